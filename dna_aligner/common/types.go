package common

import (
	"github.com/biogo/hts/sam"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// Segment represents a gap-free block shared by query and reference.
// QueryStart, QueryEnd, RefStart, RefEnd are 0-based inclusive.
type Segment struct {
	QueryStart int
	QueryEnd   int
	RefStart   int
	RefEnd     int
}

// SeedMatch is the best placement of one query k-mer on the reference.
// Shift is the reference offset minus QueryPos; Score counts identical bases.
type SeedMatch struct {
	QueryPos int
	Shift    int
	Score    int
}

// AlignmentBand restricts the DP to diagonals MeanShift-BandWidth .. MeanShift+BandWidth.
type AlignmentBand struct {
	BandWidth int
	MeanShift int
}

// Rows is the number of band rows, 2*BandWidth+1.
func (b AlignmentBand) Rows() int {
	return 2*b.BandWidth + 1
}

// Shift returns the diagonal (refPos - queryPos) of band row si.
func (b AlignmentBand) Shift(si int) int {
	return si - b.BandWidth + b.MeanShift
}

// Alignment is a pairwise alignment. Query and Ref have equal length and
// carry config.GapChar where one side has no counterpart.
type Alignment struct {
	Query []byte
	Ref   []byte
	Score int
}

// Len is the number of alignment columns.
func (a Alignment) Len() int {
	return len(a.Query)
}

// Identity is the fraction of gap-free columns whose bases are equal
// (a query N counts as equal). Zero when there are no such columns.
func (a Alignment) Identity() float64 {
	aligned, same := 0, 0
	for i := range a.Query {
		q, r := a.Query[i], a.Ref[i]
		if q == config.GapChar || r == config.GapChar {
			continue
		}
		aligned++
		if q == r || q == config.WildcardChar {
			same++
		}
	}
	if aligned == 0 {
		return 0
	}
	return float64(same) / float64(aligned)
}

// Cigar encodes the alignment with the query as the read: M for paired
// columns, I for query bases against a reference gap, D for reference
// bases against a query gap.
func (a Alignment) Cigar() sam.Cigar {
	var cigar sam.Cigar
	var cur sam.CigarOpType
	n := 0
	for i := range a.Query {
		var t sam.CigarOpType
		switch {
		case a.Ref[i] == config.GapChar:
			t = sam.CigarInsertion
		case a.Query[i] == config.GapChar:
			t = sam.CigarDeletion
		default:
			t = sam.CigarMatch
		}
		if n > 0 && t != cur {
			cigar = append(cigar, sam.NewCigarOp(cur, n))
			n = 0
		}
		cur = t
		n++
	}
	if n > 0 {
		cigar = append(cigar, sam.NewCigarOp(cur, n))
	}
	return cigar
}
