package sequence

import (
	"strings"
	"unicode"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

// complement maps IUPAC nucleotide codes to their complements.
var complement = map[byte]byte{
	'A': 'T', 'T': 'A',
	'C': 'G', 'G': 'C',
	'U': 'A',
	'R': 'Y', 'Y': 'R',
	'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D',
	'S': 'S', 'W': 'W',
	'N': 'N',
	config.GapChar: config.GapChar,
}

// ReverseComplement returns the reverse complement of a DNA sequence.
// Unknown symbols become N.
func ReverseComplement(seq string) string {
	n := len(seq)
	var sb strings.Builder
	sb.Grow(n)
	for i := n - 1; i >= 0; i-- {
		if c, ok := complement[seq[i]]; ok {
			sb.WriteByte(c)
		} else {
			sb.WriteByte(config.WildcardChar)
		}
	}
	return sb.String()
}

// CalculateGCContent is the fraction of G and C bases in a normalized
// sequence.
func CalculateGCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'S':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// Normalize upper-cases seq and drops whitespace and gap symbols, so that
// wrapped or pre-aligned input can be aligned again.
func Normalize(seq string) string {
	var sb strings.Builder
	sb.Grow(len(seq))
	for _, r := range seq {
		if unicode.IsSpace(r) || r == config.GapChar {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// StripGaps returns the aligned bases without gap symbols.
func StripGaps(aligned []byte) string {
	var sb strings.Builder
	sb.Grow(len(aligned))
	for _, b := range aligned {
		if b != config.GapChar {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
