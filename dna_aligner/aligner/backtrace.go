package aligner

import (
	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// pairs collects alignment columns back-to-front.
type pairs struct {
	query, ref []byte
}

func (p *pairs) add(q, r byte) {
	p.query = append(p.query, q)
	p.ref = append(p.ref, r)
}

// reversed returns the columns in forward order.
func (p *pairs) reversed(score int) common.Alignment {
	for i, j := 0, len(p.query)-1; i < j; i, j = i+1, j-1 {
		p.query[i], p.query[j] = p.query[j], p.query[i]
		p.ref[i], p.ref[j] = p.ref[j], p.ref[i]
	}
	return common.Alignment{Query: p.query, Ref: p.ref, Score: score}
}

// lastIndex is the matrix column where band row si ends: the end of the
// reference or the column where the query runs out, whichever is first.
func lastIndex(band common.AlignmentBand, si, queryLen, refLen int) int {
	return min(refLen, queryLen+band.Shift(si))
}

// bestEnd picks the band row with the highest terminal score, the first row
// on ties. Rows whose terminal cell pairs no real bases are skipped. ok is
// false when no row qualifies.
func bestEnd(m *matrices, queryLen, refLen int) (si int, score int32, ok bool) {
	for row := 0; row < m.band.Rows(); row++ {
		last := lastIndex(m.band, row, queryLen, refLen)
		if last < 1 || last-1-m.band.Shift(row) < 0 {
			continue
		}
		if s := m.scores[row][last]; !ok || s > score {
			si, score, ok = row, s, true
		}
	}
	return si, score, ok
}

// backtrace rebuilds the alignment from the best end, adding the unaligned
// tails and heads of either sequence as overhangs against gaps.
func backtrace(query, ref string, m *matrices) common.Alignment {
	queryLen, refLen := len(query), len(ref)
	p := &pairs{
		query: make([]byte, 0, queryLen+refLen),
		ref:   make([]byte, 0, queryLen+refLen),
	}

	si, best, ok := bestEnd(m, queryLen, refLen)
	if !ok {
		return unaligned(query, ref)
	}
	rPos := lastIndex(m.band, si, queryLen, refLen) - 1
	qPos := rPos - m.band.Shift(si)

	// right overhang
	if rPos < refLen-1 {
		for i := refLen - 1; i > rPos; i-- {
			p.add(config.GapChar, ref[i])
		}
	} else if qPos < queryLen-1 {
		for i := queryLen - 1; i > qPos; i-- {
			p.add(query[i], config.GapChar)
		}
	}

walk:
	for rPos > 0 && qPos > 0 {
		switch m.paths[si][rPos+1] {
		case config.OriginMatch:
			p.add(query[qPos], ref[rPos])
			qPos--
			rPos--
		case config.OriginRefGap:
			p.add(query[qPos], config.GapChar)
			qPos--
			si++
		case config.OriginQueryGap:
			p.add(config.GapChar, ref[rPos])
			rPos--
			si--
		default:
			break walk
		}
	}
	p.add(query[qPos], ref[rPos])

	// left overhang
	for i := rPos - 1; i >= 0; i-- {
		p.add(config.GapChar, ref[i])
	}
	for i := qPos - 1; i >= 0; i-- {
		p.add(query[i], config.GapChar)
	}

	return p.reversed(int(best))
}

// unaligned places the whole query before the whole reference.
func unaligned(query, ref string) common.Alignment {
	a := common.Alignment{
		Query: make([]byte, 0, len(query)+len(ref)),
		Ref:   make([]byte, 0, len(query)+len(ref)),
	}
	for i := 0; i < len(query); i++ {
		a.Query = append(a.Query, query[i])
		a.Ref = append(a.Ref, config.GapChar)
	}
	for i := 0; i < len(ref); i++ {
		a.Query = append(a.Query, config.GapChar)
		a.Ref = append(a.Ref, ref[i])
	}
	return a
}
