package matching

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

func randomDNA(rng *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rng.Intn(len(bases))]
	}
	return string(b)
}

func TestSeedMatch(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		ref      string
		queryPos int
		k        int
		want     common.SeedMatch
	}{
		{"exact", "GGT", "AAGGTAA", 0, 3, common.SeedMatch{QueryPos: 0, Shift: 2, Score: 3}},
		{"shift relative to query position", "TTGGT", "AAGGTAA", 2, 3, common.SeedMatch{QueryPos: 2, Shift: 0, Score: 3}},
		{"first offset wins ties", "AC", "ACTACT", 0, 2, common.SeedMatch{QueryPos: 0, Shift: 0, Score: 2}},
		{"best partial match", "GGG", "AGCGA", 0, 3, common.SeedMatch{QueryPos: 0, Shift: 1, Score: 2}},
		{"no match", "GGG", "AAAAA", 0, 3, common.SeedMatch{QueryPos: 0, Shift: -1, Score: 0}},
		{"last offset is not scanned", "GG", "AAGG", 0, 2, common.SeedMatch{QueryPos: 0, Shift: 1, Score: 1}},
		{"k-mer cut at query end", "TTGC", "AGCAAAA", 2, 3, common.SeedMatch{QueryPos: 2, Shift: -1, Score: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeedMatch(tt.query, tt.ref, tt.queryPos, tt.k); got != tt.want {
				t.Errorf("SeedMatch() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSeedPositions(t *testing.T) {
	tests := []struct {
		queryLen, k, nSeeds int
		want                []int
	}{
		{100, 21, 5, []int{0, 20, 40, 60, 80}},
		{102, 21, 5, []int{0, 20, 40, 60, 80}},
		{197, 21, 5, []int{0, 44, 88, 132, 176}},
		{43, 21, 5, []int{0, 6, 12, 18, 24}},
		{21, 21, 5, []int{0, 0, 0, 0, 0}},
		{30, 21, 1, []int{0}},
		{20, 21, 5, nil},
	}
	for _, tt := range tests {
		if got := SeedPositions(tt.queryLen, tt.k, tt.nSeeds); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SeedPositions(%d, %d, %d) = %v, want %v", tt.queryLen, tt.k, tt.nSeeds, got, tt.want)
		}
	}
}

func TestBandFromAnchors(t *testing.T) {
	tests := []struct {
		name   string
		shifts []int
		want   common.AlignmentBand
	}{
		{"single", []int{4}, common.AlignmentBand{BandWidth: 9, MeanShift: 4}},
		{"spread", []int{3, -2, 5}, common.AlignmentBand{BandWidth: 16, MeanShift: 2}},
		{"negative half rounds up", []int{-3, -2}, common.AlignmentBand{BandWidth: 10, MeanShift: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var anchors []common.SeedMatch
			for _, s := range tt.shifts {
				anchors = append(anchors, common.SeedMatch{Shift: s, Score: config.SeedLength})
			}
			if got := BandFromAnchors(anchors); got != tt.want {
				t.Errorf("BandFromAnchors() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindBand(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref := randomDNA(rng, 200)

	tests := []struct {
		name       string
		query      string
		ref        string
		want       common.AlignmentBand
		wantSeeded bool
	}{
		{"too short to seed", ref[:42], ref, common.AlignmentBand{BandWidth: 42}, false},
		{"identical", ref, ref, common.AlignmentBand{BandWidth: config.BandPadding}, true},
		{"offset window", ref[30:130], ref, common.AlignmentBand{BandWidth: config.BandPadding, MeanShift: 30}, true},
		{"no reliable seed", strings.Repeat("T", 100), strings.Repeat("G", 100), common.AlignmentBand{BandWidth: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, seeded := FindBand(tt.query, tt.ref)
			if got != tt.want || seeded != tt.wantSeeded {
				t.Errorf("FindBand() = %+v, %v, want %+v, %v", got, seeded, tt.want, tt.wantSeeded)
			}
		})
	}
}

func TestFindAnchors_RejectsWeakSeeds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ref := randomDNA(rng, 150)
	query := []byte(ref[20:120])

	// destroy the first seed, k-mer query[0:21]
	for i := 0; i < 8; i++ {
		query[i*2] = "ACGT"[(strings.IndexByte("ACGT", query[i*2])+1)%4]
	}

	anchors := FindAnchors(string(query), ref)
	for _, a := range anchors {
		if a.QueryPos == 0 {
			t.Errorf("FindAnchors() kept the mutated seed: %+v", a)
		}
		if float64(a.Score) < config.MinSeedMatchFraction*config.SeedLength {
			t.Errorf("FindAnchors() kept a weak seed: %+v", a)
		}
	}
	if len(anchors) == 0 {
		t.Errorf("FindAnchors() found no anchors")
	}
}

func TestFindAnchors_ShortQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ref := randomDNA(rng, 100)
	for _, query := range []string{"ACGT", ref[10:30]} {
		if got := FindAnchors(query, ref); len(got) != 0 {
			t.Errorf("FindAnchors(%q) = %+v, want no anchors", query, got)
		}
	}
}

func TestFindAnchors_ClippedLastSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	ref := randomDNA(rng, 200)
	query := ref[30:130]

	anchors := FindAnchors(query, ref)
	if len(anchors) != config.NSeeds {
		t.Fatalf("FindAnchors() kept %d anchors, want %d", len(anchors), config.NSeeds)
	}
	last := anchors[len(anchors)-1]
	want := common.SeedMatch{QueryPos: 80, Shift: 30, Score: 20}
	if last != want {
		t.Errorf("last anchor = %+v, want %+v", last, want)
	}
}
