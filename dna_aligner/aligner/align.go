package aligner

import (
	"errors"
	"fmt"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/matching"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/sequence"
)

// ErrInvalidInput is returned for sequences that cannot be aligned.
var ErrInvalidInput = errors.New("invalid input")

// Align aligns query against ref. The band is estimated from k-mer seeds
// (falling back to the full matrix), filled with the banded DP and traced
// back from the best scoring end of the query or reference.
// Neither sequence may be empty.
func Align(query, ref string) (common.Alignment, error) {
	band, _, err := Band(query, ref)
	if err != nil {
		return common.Alignment{}, err
	}
	return AlignInBand(query, ref, band)
}

// Band validates the input and returns the band Align would use, and
// whether it was derived from seeds.
func Band(query, ref string) (common.AlignmentBand, bool, error) {
	if err := validate(query, ref); err != nil {
		return common.AlignmentBand{}, false, err
	}
	band, seeded := matching.FindBand(query, ref)
	return band, seeded, nil
}

// AlignInBand runs the DP and traceback inside a caller supplied band.
func AlignInBand(query, ref string, band common.AlignmentBand) (common.Alignment, error) {
	if err := validate(query, ref); err != nil {
		return common.Alignment{}, err
	}
	if band.BandWidth < 0 {
		return common.Alignment{}, fmt.Errorf("%w: negative band width %d", ErrInvalidInput, band.BandWidth)
	}
	m := fill(query, ref, band)
	return backtrace(query, ref, m), nil
}

// StrandAlignment is an alignment together with the query strand and the
// band that produced it.
type StrandAlignment struct {
	common.Alignment
	Reverse bool // the query was reverse complemented
	Band    common.AlignmentBand
	Seeded  bool // Band came from seeds rather than the unrestricted fallback
}

// AlignDetailed is Align on the forward strand, also reporting the band.
func AlignDetailed(query, ref string) (StrandAlignment, error) {
	band, seeded, err := Band(query, ref)
	if err != nil {
		return StrandAlignment{}, err
	}
	aln, err := AlignInBand(query, ref, band)
	if err != nil {
		return StrandAlignment{}, err
	}
	return StrandAlignment{Alignment: aln, Band: band, Seeded: seeded}, nil
}

// AlignBestStrand aligns the query and its reverse complement and keeps the
// higher score. Ties keep the forward strand.
func AlignBestStrand(query, ref string) (StrandAlignment, error) {
	fwd, err := AlignDetailed(query, ref)
	if err != nil {
		return StrandAlignment{}, err
	}
	rev, err := AlignDetailed(sequence.ReverseComplement(query), ref)
	if err != nil {
		return StrandAlignment{}, err
	}
	if rev.Score > fwd.Score {
		rev.Reverse = true
		return rev, nil
	}
	return fwd, nil
}

func validate(query, ref string) error {
	if len(query) == 0 {
		return fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if len(ref) == 0 {
		return fmt.Errorf("%w: empty reference", ErrInvalidInput)
	}
	return nil
}
