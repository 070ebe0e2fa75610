package aligner

import (
	"math"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// noScore marks a candidate whose predecessor lies outside the band.
const noScore = math.MinInt32

// matrices holds the DP state of one alignment. Both are indexed
// [si][ri] with si a band row and ri = refPos+1; column 0 is the empty
// reference prefix.
type matrices struct {
	band   common.AlignmentBand
	scores [][]int32
	paths  [][]int32
}

func newMatrices(band common.AlignmentBand, refLen int) *matrices {
	rows := band.Rows()
	m := &matrices{
		band:   band,
		scores: make([][]int32, rows),
		paths:  make([][]int32, rows),
	}
	for si := 0; si < rows; si++ {
		m.scores[si] = make([]int32, refLen+1)
		m.paths[si] = make([]int32, refLen+1)
	}
	return m
}

// fill computes scores and origins for every band cell. Cell (si, ri+1)
// holds the best score of an alignment ending with ref[ri] and
// query[ri-shift(si)] both consumed.
func fill(query, ref string, band common.AlignmentBand) *matrices {
	m := newMatrices(band, len(ref))
	lastRow := 2 * band.BandWidth

	var candidates [4]int32
	for ri := 0; ri < len(ref); ri++ {
		for si := lastRow; si >= 0; si-- {
			qPos := ri - band.Shift(si)

			switch {
			case qPos < 0:
				// this diagonal has not reached the query yet
				m.scores[si][ri+1] = 0
				m.paths[si][ri+1] = config.OriginQueryGap
				continue
			case qPos >= len(query):
				m.scores[si][ri+1] = config.EndOfSequence
				m.paths[si][ri+1] = config.EndOfSequence
				continue
			}

			candidates[config.OriginReset] = 0
			candidates[config.OriginMatch] = m.scores[si][ri] + substitution(query[qPos], ref[ri])
			candidates[config.OriginRefGap] = noScore
			if si < lastRow {
				candidates[config.OriginRefGap] = m.scores[si+1][ri+1] +
					gapCost(m.paths[si+1][ri+1], config.OriginRefGap)
			}
			candidates[config.OriginQueryGap] = noScore
			if si > 0 {
				candidates[config.OriginQueryGap] = m.scores[si-1][ri] +
					gapCost(m.paths[si-1][ri], config.OriginQueryGap)
			}

			origin, score := argmax(candidates[:])
			m.scores[si][ri+1] = score
			m.paths[si][ri+1] = int32(origin)
		}
	}
	return m
}

// substitution scores a query base against a reference base. A query N
// matches anything.
func substitution(q, r byte) int32 {
	if q == r || q == config.WildcardChar {
		return config.Match
	}
	return config.Mismatch
}

// gapCost charges config.GapOpen unless the neighbor already ends in a gap
// of the same kind.
func gapCost(neighborOrigin int32, kind int32) int32 {
	if neighborOrigin == kind {
		return config.GapExtend
	}
	return config.GapExtend + config.GapOpen
}

// argmax returns the first index holding the maximum value.
func argmax(values []int32) (int, int32) {
	best, bestValue := 0, values[0]
	for i, v := range values[1:] {
		if v > bestValue {
			best, bestValue = i+1, v
		}
	}
	return best, bestValue
}
