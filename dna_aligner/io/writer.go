package io

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/common"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
	"github.com/nextstrain/nextclade-sub002/dna_aligner/merging"
)

// Writer writes alignments of queries against one reference in one of the
// config.Format* output formats.
type Writer struct {
	w       io.Writer
	format  string
	refName string
	fa      *fasta.Writer
	enc     *json.Encoder
	header  bool
}

// NewWriter returns a Writer for format. refName labels the reference.
func NewWriter(w io.Writer, format, refName string) (*Writer, error) {
	out := &Writer{w: w, format: format, refName: refName}
	switch format {
	case config.FormatFasta:
		out.fa = fasta.NewWriter(w, config.FastaLineWidth)
	case config.FormatJSON:
		out.enc = json.NewEncoder(w)
	case config.FormatTSV:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return out, nil
}

// jsonRecord is one line of JSON output.
type jsonRecord struct {
	Name     string  `json:"name"`
	Ref      string  `json:"ref"`
	Score    int     `json:"score"`
	Strand   string  `json:"strand"`
	Identity float64 `json:"identity"`
	Cigar    string  `json:"cigar"`
	Query    string  `json:"alignedQuery"`
	AlnRef   string  `json:"alignedRef"`
	Error    string  `json:"error,omitempty"`
}

// Write writes the alignment of query name. reverse tells whether the
// query was reverse complemented.
func (w *Writer) Write(name string, aln common.Alignment, reverse bool) error {
	switch w.format {
	case config.FormatFasta:
		desc := fmt.Sprintf("score=%d strand=%s ref=%s", aln.Score, strand(reverse), w.refName)
		if err := w.writeFasta(name, desc, aln.Query); err != nil {
			return err
		}
		return w.writeFasta(w.refName, "aligned to "+name, aln.Ref)
	case config.FormatJSON:
		return w.enc.Encode(jsonRecord{
			Name:     name,
			Ref:      w.refName,
			Score:    aln.Score,
			Strand:   strand(reverse),
			Identity: aln.Identity(),
			Cigar:    aln.Cigar().String(),
			Query:    string(aln.Query),
			AlnRef:   string(aln.Ref),
		})
	default:
		if err := w.writeTSVHeader(); err != nil {
			return err
		}
		segments := merging.MergeAdjacentSegments(merging.Blocks(aln), config.AdjacentMergeMaxGap)
		_, err := fmt.Fprintf(w.w, "%s\t%d\t%s\t%.4f\t%s\t%s\n",
			name, aln.Score, strand(reverse), aln.Identity(), aln.Cigar(), FormatSegments(segments))
		return err
	}
}

// WriteError records a query that could not be aligned. FASTA output has
// no place for it and skips the record.
func (w *Writer) WriteError(name string, alignErr error) error {
	switch w.format {
	case config.FormatJSON:
		return w.enc.Encode(jsonRecord{Name: name, Ref: w.refName, Error: alignErr.Error()})
	case config.FormatTSV:
		if err := w.writeTSVHeader(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w.w, "%s\tNA\tNA\tNA\tNA\t%s\n", name, alignErr)
		return err
	}
	return nil
}

func (w *Writer) writeTSVHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	_, err := fmt.Fprintln(w.w, "name\tscore\tstrand\tidentity\tcigar\tsegments")
	return err
}

func (w *Writer) writeFasta(id, desc string, aligned []byte) error {
	s := linear.NewSeq(id, alphabet.BytesToLetters(aligned), alphabet.DNAredundant)
	s.Desc = desc
	_, err := w.fa.Write(s)
	return err
}

func strand(reverse bool) string {
	if reverse {
		return "-"
	}
	return "+"
}

// FormatSegments renders segments as a list of (query_start, query_end,
// ref_start, ref_end) tuples with exclusive ends.
func FormatSegments(segments []common.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, fmt.Sprintf("(%d, %d, %d, %d)", seg.QueryStart, seg.QueryEnd+1, seg.RefStart, seg.RefEnd+1))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
