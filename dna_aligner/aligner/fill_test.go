package aligner

import (
	"testing"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

func TestFill_Dimensions(t *testing.T) {
	band := common.AlignmentBand{BandWidth: 3, MeanShift: 1}
	m := fill("ACGTA", "ACGTAC", band)
	if len(m.scores) != 7 || len(m.paths) != 7 {
		t.Fatalf("fill() has %d/%d rows, want 7", len(m.scores), len(m.paths))
	}
	for si := range m.scores {
		if len(m.scores[si]) != 7 || len(m.paths[si]) != 7 {
			t.Errorf("row %d has %d/%d columns, want 7", si, len(m.scores[si]), len(m.paths[si]))
		}
	}
}

func TestFill_Sentinels(t *testing.T) {
	query, ref := "AC", "ACGT"
	band := common.AlignmentBand{BandWidth: 2}
	m := fill(query, ref, band)

	for si := 0; si < band.Rows(); si++ {
		for ri := 0; ri < len(ref); ri++ {
			qPos := ri - band.Shift(si)
			score, origin := m.scores[si][ri+1], m.paths[si][ri+1]
			switch {
			case qPos < 0:
				if score != 0 || origin != config.OriginQueryGap {
					t.Errorf("cell (%d,%d) before the query = %d/%d, want 0/%d", si, ri+1, score, origin, config.OriginQueryGap)
				}
			case qPos >= len(query):
				if score != config.EndOfSequence || origin != config.EndOfSequence {
					t.Errorf("cell (%d,%d) past the query = %d/%d, want end of sequence", si, ri+1, score, origin)
				}
			default:
				if score < 0 {
					t.Errorf("cell (%d,%d) score %d below the reset floor", si, ri+1, score)
				}
				if si == 0 && origin == config.OriginQueryGap {
					t.Errorf("cell (0,%d) took a query gap from outside the band", ri+1)
				}
				if si == 2*band.BandWidth && origin == config.OriginRefGap {
					t.Errorf("cell (%d,%d) took a reference gap from outside the band", si, ri+1)
				}
			}
		}
	}
}

func TestGapCost(t *testing.T) {
	tests := []struct {
		name     string
		neighbor int32
		kind     int32
		want     int32
	}{
		{"open after match", config.OriginMatch, config.OriginRefGap, config.GapOpen + config.GapExtend},
		{"extend reference gap", config.OriginRefGap, config.OriginRefGap, config.GapExtend},
		{"extend query gap", config.OriginQueryGap, config.OriginQueryGap, config.GapExtend},
		{"switch gap kind", config.OriginRefGap, config.OriginQueryGap, config.GapOpen + config.GapExtend},
		{"open after reset", config.OriginReset, config.OriginQueryGap, config.GapOpen + config.GapExtend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gapCost(tt.neighbor, tt.kind); got != tt.want {
				t.Errorf("gapCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		values    []int32
		wantIndex int
		wantValue int32
	}{
		{[]int32{0, 3, 1, 2}, 1, 3},
		{[]int32{0, 2, 2, 2}, 1, 2},
		{[]int32{0, -1, -2, -3}, 0, 0},
		{[]int32{0, -1, noScore, 4}, 3, 4},
	}
	for _, tt := range tests {
		i, v := argmax(tt.values)
		if i != tt.wantIndex || v != tt.wantValue {
			t.Errorf("argmax(%v) = %d, %d, want %d, %d", tt.values, i, v, tt.wantIndex, tt.wantValue)
		}
	}
}
