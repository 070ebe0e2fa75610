package matching

import (
	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
)

// SeedMatch places the k-mer query[queryPos:queryPos+k] on the reference.
// The k-mer is cut short at the end of the query. Every offset in
// [0, len(ref)-k) is scored by the number of identical bases and the first
// offset with the highest count wins. A k-mer that matches nowhere keeps
// offset -1 and score 0.
func SeedMatch(query, ref string, queryPos, k int) common.SeedMatch {
	kmer := query[queryPos:min(queryPos+k, len(query))]

	bestOffset, bestScore := -1, 0
	for offset := 0; offset < len(ref)-k; offset++ {
		score := 0
		for pos := 0; pos < len(kmer); pos++ {
			if kmer[pos] == ref[offset+pos] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestOffset = offset
		}
	}
	return common.SeedMatch{QueryPos: queryPos, Shift: bestOffset - queryPos, Score: bestScore}
}

// SeedPositions returns nSeeds k-mer start positions spread over the query
// at a whole-number step, (queryLen-k)/(nSeeds-1) rounded. Rounding the step
// up can leave the last k-mer up to two bases short. A query shorter than k
// has no seeds.
func SeedPositions(queryLen, k, nSeeds int) []int {
	if queryLen < k {
		return nil
	}
	if nSeeds < 2 {
		return []int{0}
	}
	step := roundHalfUp(float64(queryLen-k) / float64(nSeeds-1))
	positions := make([]int, nSeeds)
	for i := range positions {
		positions[i] = step * i
	}
	return positions
}
