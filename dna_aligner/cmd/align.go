package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/batch"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
	dnaio "github.com/nextstrain/nextclade-sub002/dna_aligner/io"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/merging"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/regions"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/sequence"
)

// alignCmd aligns every query against the reference.
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align query sequences against a reference",
	Long: `Align each record of the query FASTA against the first record of the
reference FASTA and write the pairwise alignments.

Output formats:
  fasta  the aligned query followed by the aligned reference, per query
  tsv    name, score, strand, identity, CIGAR and gap-free segments
  json   one JSON object per line with the aligned sequences`,
	Example: "  nucalign align -r ref.fa -q sequences.fa -f tsv -o alignments.tsv",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New(viper.GetViper())
		if err != nil {
			return err
		}
		return runAlign(cmd.Context(), c)
	},
}

func init() {
	rootCmd.AddCommand(alignCmd)
}

// alignRun is the outcome of aligning all queries of a Config.
type alignRun struct {
	ref     dnaio.Record
	results []batch.Result
}

// alignAll reads the inputs of c and aligns every query.
func alignAll(ctx context.Context, c *config.Config) (*alignRun, error) {
	ref, err := dnaio.ReadSequence(c.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference: %w", err)
	}
	records, err := dnaio.ReadFASTAFile(c.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}

	if c.Verbose {
		stderr.Printf("reference %s: %s bases, GC content %.4f", ref.Name,
			humanize.Comma(int64(len(ref.Seq))), sequence.CalculateGCContent(ref.Seq))
		stderr.Printf("aligning %s queries on %d workers", humanize.Comma(int64(len(records))), c.Workers)
	}

	queries := make([]batch.Query, len(records))
	for i, r := range records {
		queries[i] = batch.Query{Name: r.Name, Seq: r.Seq}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opts := batch.Options{Workers: c.Workers, BothStrands: c.BothStrands}

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if c.Progress {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(queries)),
			mpb.PrependDecorators(
				decor.Name("aligned queries: ", decor.WC{W: len("aligned queries: "), C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 1024),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
		workers := float64(c.Workers)
		opts.OnDone = func(_ int, elapsed time.Duration) {
			bar.EwmaIncrBy(1, time.Duration(float64(elapsed)/workers))
		}
	}

	start := time.Now()
	results, err := batch.Run(ctx, ref.Seq, queries, opts)
	if pbs != nil {
		if err != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if err != nil {
		return nil, fmt.Errorf("alignment interrupted: %w", err)
	}

	if c.Verbose {
		for _, res := range results {
			logResult(res)
		}
		stderr.Printf("aligned %s queries in %s", humanize.Comma(int64(len(results))), time.Since(start))
	}
	return &alignRun{ref: ref, results: results}, nil
}

// logResult writes the band, score and coverage of one query to stderr.
func logResult(res batch.Result) {
	if res.Err != nil {
		stderr.Printf("%s: %v", res.Name, res.Err)
		return
	}
	how := "seeded"
	if !res.Seeded {
		how = "unrestricted, no reliable seed"
	}
	queryLen := len(sequence.StripGaps(res.Alignment.Query))
	coverage := regions.QueryCoverage(queryLen, merging.Blocks(res.Alignment))
	stderr.Printf("%s: band width %d, mean shift %d (%s), score %d, query coverage %.2f%%",
		res.Name, res.Band.BandWidth, res.Band.MeanShift, how, res.Alignment.Score, 100*coverage)
}

// openOutput returns the output file of c, or stdout.
func openOutput(c *config.Config) (*os.File, func() error, error) {
	if c.Out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runAlign(ctx context.Context, c *config.Config) error {
	run, err := alignAll(ctx, c)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(c)
	if err != nil {
		return err
	}
	w, err := dnaio.NewWriter(out, c.Format, run.ref.Name)
	if err != nil {
		closeOut()
		return err
	}

	failed := 0
	for _, res := range run.results {
		if res.Err != nil {
			failed++
			err = w.WriteError(res.Name, res.Err)
		} else {
			err = w.Write(res.Name, res.Alignment, res.Reverse)
		}
		if err != nil {
			closeOut()
			return fmt.Errorf("failed to write %s: %w", res.Name, err)
		}
	}
	if failed > 0 {
		stderr.Printf("%d of %d queries could not be aligned", failed, len(run.results))
	}
	return closeOut()
}
