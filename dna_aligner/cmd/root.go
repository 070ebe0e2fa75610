// Package cmd is for command line interactions with the nucalign application
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)

	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nucalign",
	Short: "Pairwise banded alignment of nucleotide sequences against a reference",
	Long: `Align nucleotide query sequences against a reference sequence.

The band of diagonals searched by the dynamic programming is estimated from
k-mer seeds spread over each query. Queries without a reliable seed are
aligned against the whole reference.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nucalign.yaml)")
	flags.StringP("ref", "r", "", "FASTA file whose first record is the reference")
	flags.StringP("query", "q", "", "FASTA file with the query sequences")
	flags.StringP("out", "o", "", "output file (default stdout)")
	flags.StringP("format", "f", config.FormatFasta, "output format: fasta, tsv or json")
	flags.IntP("workers", "w", 0, "number of concurrent alignments (default number of CPUs)")
	flags.Bool("both-strands", false, "also align the reverse complement of each query")
	flags.Bool("progress", false, "show a progress bar on stderr")
	flags.BoolP("verbose", "v", false, "log seeding and band details")

	for _, name := range []string{"ref", "query", "out", "format", "workers", "both-strands", "progress", "verbose"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
	config.SetDefaults(viper.GetViper())
}

// initConfig reads in the config file and NUCALIGN_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".nucalign")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("nucalign")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			stderr.Fatalf("failed to read config file: %v", err)
		}
	}
}
