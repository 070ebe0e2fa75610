// Package config holds the alignment constants and the run settings that are
// unmarshalled from Viper (see: /dna_aligner/cmd)
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Seed matching parameters
const (
	SeedLength           = 21
	NSeeds               = 5
	MinSeedMatchFraction = 0.7 // float64
	BandPadding          = 9   // extra width for small indels between seeds
)

// Scoring parameters
const (
	Match     = 3
	Mismatch  = -1
	GapOpen   = -2
	GapExtend = 0
)

// EndOfSequence marks band cells that run past the end of the query.
const EndOfSequence = -1

// Origin codes recorded in the path matrix
const (
	OriginReset    = 0
	OriginMatch    = 1
	OriginRefGap   = 2 // query base against a gap in the reference
	OriginQueryGap = 3 // reference base against a gap in the query
)

// Symbols
const (
	GapChar      = '-'
	WildcardChar = 'N'
)

// Segment merging parameters
const (
	AdjacentMergeMaxGap   = 8
	MaxGapRatioDifference = 0.55 // float64
)

// Output formats
const (
	FormatFasta = "fasta"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

// FastaLineWidth is the wrap width of aligned FASTA output.
const FastaLineWidth = 60

// Config is the root-level settings struct and is a mix of settings
// available in .nucalign.yaml, NUCALIGN_* env vars and the command line
type Config struct {
	// path to a FASTA file whose first record is the reference
	Ref string `mapstructure:"ref"`

	// path to a FASTA file with one or more query records
	Query string `mapstructure:"query"`

	// output file, stdout when empty
	Out string `mapstructure:"out"`

	// one of fasta, tsv, json
	Format string `mapstructure:"format"`

	// number of concurrent alignments
	Workers int `mapstructure:"workers"`

	// also try the reverse complement of each query
	BothStrands bool `mapstructure:"both-strands"`

	// show a progress bar on stderr
	Progress bool `mapstructure:"progress"`

	// log debug lines
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the defaults of every Config key with Viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", FormatFasta)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("both-strands", false)
	v.SetDefault("progress", false)
	v.SetDefault("verbose", false)
}

// New returns a Config populated by Viper settings (config file, env and
// command line arguments) and checks that it is usable
func New(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks required paths, the output format and the worker count.
func (c *Config) Validate() error {
	if c.Ref == "" {
		return fmt.Errorf("no reference FASTA given (--ref)")
	}
	if c.Query == "" {
		return fmt.Errorf("no query FASTA given (--query)")
	}
	switch c.Format {
	case FormatFasta, FormatTSV, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", c.Format, FormatFasta, FormatTSV, FormatJSON)
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
