package merging

import (
	"math"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// Blocks splits an alignment into maximal gap-free blocks. Coordinates are
// positions in the ungapped query and reference, inclusive.
func Blocks(aln common.Alignment) []common.Segment {
	var blocks []common.Segment
	qPos, rPos := 0, 0
	open := false
	for i := range aln.Query {
		qGap := aln.Query[i] == config.GapChar
		rGap := aln.Ref[i] == config.GapChar
		if !qGap && !rGap {
			if open {
				last := &blocks[len(blocks)-1]
				last.QueryEnd, last.RefEnd = qPos, rPos
			} else {
				blocks = append(blocks, common.Segment{QueryStart: qPos, QueryEnd: qPos, RefStart: rPos, RefEnd: rPos})
				open = true
			}
		} else {
			open = false
		}
		if !qGap {
			qPos++
		}
		if !rGap {
			rPos++
		}
	}
	return blocks
}

// MergeAdjacentSegments merges adjacent or nearly adjacent segments.
// Input segments MUST be sorted by QueryStart.
// Two segments merge when both gaps are at most maxGap and the gaps differ by
// no more than max(5, min gap * config.MaxGapRatioDifference).
func MergeAdjacentSegments(segments []common.Segment, maxGap int) []common.Segment {
	if len(segments) <= 1 {
		result := make([]common.Segment, len(segments))
		copy(result, segments)
		return result
	}

	merged := []common.Segment{segments[0]}
	for _, next := range segments[1:] {
		cur := &merged[len(merged)-1]

		// negative when the segments overlap
		qGap := next.QueryStart - cur.QueryEnd - 1
		rGap := next.RefStart - cur.RefEnd - 1

		canMerge := false
		if qGap <= maxGap && rGap <= maxGap {
			maxDiff := math.Max(5.0, float64(min(qGap, rGap))*config.MaxGapRatioDifference)
			canMerge = math.Abs(float64(qGap-rGap)) <= maxDiff
		}

		if canMerge {
			cur.QueryEnd = next.QueryEnd
			cur.RefEnd = next.RefEnd
		} else {
			merged = append(merged, next)
		}
	}
	return merged
}
