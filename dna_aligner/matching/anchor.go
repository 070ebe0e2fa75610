package matching

import (
	"math"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// DefaultBand covers every diagonal that can hold a pair of bases.
func DefaultBand(queryLen, refLen int) common.AlignmentBand {
	return common.AlignmentBand{BandWidth: min(queryLen, refLen), MeanShift: 0}
}

// FindBand estimates the diagonal band for aligning query against ref from
// k-mer seeds. Short sequences, and queries without any reliable seed, get
// the unrestricted DefaultBand. The second return value tells whether the
// band came from seeds.
func FindBand(query, ref string) (common.AlignmentBand, bool) {
	band := DefaultBand(len(query), len(ref))
	if band.BandWidth <= 2*config.SeedLength {
		return band, false
	}

	anchors := FindAnchors(query, ref)
	if len(anchors) == 0 {
		return band, false
	}
	return BandFromAnchors(anchors), true
}

// FindAnchors probes config.NSeeds evenly spaced k-mers of the query and
// keeps those matching at least config.MinSeedMatchFraction of their bases.
func FindAnchors(query, ref string) []common.SeedMatch {
	var anchors []common.SeedMatch
	for _, qPos := range SeedPositions(len(query), config.SeedLength, config.NSeeds) {
		m := SeedMatch(query, ref, qPos, config.SeedLength)
		if float64(m.Score) >= config.MinSeedMatchFraction*config.SeedLength {
			anchors = append(anchors, m)
		}
	}
	return anchors
}

// BandFromAnchors spans the shifts of the anchors, padded by
// config.BandPadding. anchors must not be empty.
func BandFromAnchors(anchors []common.SeedMatch) common.AlignmentBand {
	minShift, maxShift := anchors[0].Shift, anchors[0].Shift
	for _, a := range anchors[1:] {
		minShift = min(minShift, a.Shift)
		maxShift = max(maxShift, a.Shift)
	}
	return common.AlignmentBand{
		BandWidth: maxShift - minShift + config.BandPadding,
		MeanShift: roundHalfUp(0.5 * float64(minShift+maxShift)),
	}
}

// roundHalfUp rounds .5 towards +Inf, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
