package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// cigarCmd prints one CIGAR string per query.
var cigarCmd = &cobra.Command{
	Use:     "cigar",
	Short:   "Print the CIGAR of each query aligned against the reference",
	Long:    "Print name, score, strand and CIGAR (M, I, D operations, query as read) for each query.",
	Example: "  nucalign cigar -r ref.fa -q sequences.fa",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New(viper.GetViper())
		if err != nil {
			return err
		}
		return runCigar(cmd.Context(), c)
	},
}

func init() {
	rootCmd.AddCommand(cigarCmd)
}

func runCigar(ctx context.Context, c *config.Config) error {
	run, err := alignAll(ctx, c)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(c)
	if err != nil {
		return err
	}

	for _, res := range run.results {
		if res.Err != nil {
			_, err = fmt.Fprintf(out, "%s\tNA\tNA\t*\n", res.Name)
		} else {
			strand := "+"
			if res.Reverse {
				strand = "-"
			}
			_, err = fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", res.Name, res.Alignment.Score, strand, res.Alignment.Cigar())
		}
		if err != nil {
			closeOut()
			return err
		}
	}
	return closeOut()
}
