// Package batch aligns many queries against one reference on a bounded
// pool of goroutines.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/aligner"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
)

// Query is one sequence to align.
type Query struct {
	Name string
	Seq  string
}

// Result is the outcome for the query at the same index of the input.
type Result struct {
	Name      string
	Alignment common.Alignment
	Reverse   bool
	Band      common.AlignmentBand
	Seeded    bool
	Err       error
}

// Options controls a Run.
type Options struct {
	// number of concurrent alignments, at least 1
	Workers int

	// also align the reverse complement and keep the better strand
	BothStrands bool

	// called after each finished query with its index and the time it took;
	// calls may come from several goroutines at once
	OnDone func(i int, elapsed time.Duration)
}

// Run aligns every query against ref and returns the results in input
// order. Failed alignments are reported in Result.Err. When ctx is
// cancelled no new alignments are started, running ones finish, and
// ctx.Err() is returned alongside the partial results.
func Run(ctx context.Context, ref string, queries []Query, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i].Name = q.Name
	}
	tokens := make(chan struct{}, workers)
	var wg sync.WaitGroup

dispatch:
	for i, q := range queries {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case tokens <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, q Query) {
			start := time.Now()
			defer func() {
				<-tokens
				if opts.OnDone != nil {
					opts.OnDone(i, time.Since(start))
				}
				wg.Done()
			}()
			results[i] = alignOne(q, ref, opts.BothStrands)
		}(i, q)
	}
	wg.Wait()

	return results, ctx.Err()
}

func alignOne(q Query, ref string, bothStrands bool) Result {
	align := aligner.AlignDetailed
	if bothStrands {
		align = aligner.AlignBestStrand
	}
	aln, err := align(q.Seq, ref)
	if err != nil {
		return Result{Name: q.Name, Err: err}
	}
	return Result{
		Name:      q.Name,
		Alignment: aln.Alignment,
		Reverse:   aln.Reverse,
		Band:      aln.Band,
		Seeded:    aln.Seeded,
	}
}
