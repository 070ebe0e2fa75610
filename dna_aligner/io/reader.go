package io

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/sequence"
)

// ErrNoRecords is returned for FASTA input without a single sequence.
var ErrNoRecords = errors.New("no FASTA records")

// Record is a named, normalized nucleotide sequence.
type Record struct {
	Name string
	Seq  string
}

// ReadFASTA parses every record of a (multi-)FASTA stream. Sequences are
// normalized with sequence.Normalize.
func ReadFASTA(r io.Reader) ([]Record, error) {
	fr := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant))

	var records []Record
	for {
		s, err := fr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(records)+1, err)
		}
		l := s.(*linear.Seq)
		records = append(records, Record{
			Name: l.ID,
			Seq:  sequence.Normalize(string(alphabet.LettersToBytes(l.Seq))),
		})
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ReadFASTAFile reads all records of the FASTA file at filePath.
func ReadFASTAFile(filePath string) ([]Record, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadFASTA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return records, nil
}

// ReadSequence reads the first record of the FASTA file at filePath.
func ReadSequence(filePath string) (Record, error) {
	records, err := ReadFASTAFile(filePath)
	if err != nil {
		return Record{}, err
	}
	return records[0], nil
}
