package regions

import (
	"sort"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
)

// FindUncoveredRegions finds regions in the query not covered by segments.
// Returns [start, end] pairs, inclusive, in query order.
func FindUncoveredRegions(queryLen int, segments []common.Segment) [][2]int {
	if len(segments) == 0 {
		if queryLen > 0 {
			return [][2]int{{0, queryLen - 1}}
		}
		return [][2]int{}
	}

	sorted := make([]common.Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].QueryStart < sorted[j].QueryStart
	})

	var uncovered [][2]int
	currentPos := 0 // end of the last covered region + 1
	for _, seg := range sorted {
		if seg.QueryStart > currentPos {
			uncovered = append(uncovered, [2]int{currentPos, seg.QueryStart - 1})
		}
		currentPos = max(currentPos, seg.QueryEnd+1)
	}
	if currentPos < queryLen {
		uncovered = append(uncovered, [2]int{currentPos, queryLen - 1})
	}
	return uncovered
}

// QueryCoverage is the fraction of the query covered by segments.
func QueryCoverage(queryLen int, segments []common.Segment) float64 {
	if queryLen == 0 {
		return 0
	}
	uncovered := 0
	for _, reg := range FindUncoveredRegions(queryLen, segments) {
		uncovered += reg[1] - reg[0] + 1
	}
	return float64(queryLen-uncovered) / float64(queryLen)
}
