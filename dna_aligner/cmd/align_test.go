package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nextstrain/nextclade-sub002/dna_aligner/config"
)

func writeInputs(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.fa")
	query := filepath.Join(dir, "queries.fa")
	if err := os.WriteFile(ref, []byte(">ref1 reference\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(query, []byte(">q1\nACT\n>q2\nacgt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Ref:     ref,
		Query:   query,
		Out:     filepath.Join(dir, "out.txt"),
		Format:  config.FormatTSV,
		Workers: 2,
	}
}

func Test_runAlign(t *testing.T) {
	c := writeInputs(t)
	if err := runAlign(context.Background(), c); err != nil {
		t.Fatalf("runAlign() error = %v", err)
	}

	got, err := os.ReadFile(c.Out)
	if err != nil {
		t.Fatal(err)
	}
	want := "name\tscore\tstrand\tidentity\tcigar\tsegments\n" +
		"q1\t7\t+\t1.0000\t2M1D1M\t[(0, 3, 0, 4)]\n" +
		"q2\t12\t+\t1.0000\t4M\t[(0, 4, 0, 4)]\n"
	if string(got) != want {
		t.Errorf("runAlign() wrote\n%q\nwant\n%q", got, want)
	}
}

func Test_runCigar(t *testing.T) {
	c := writeInputs(t)
	if err := runCigar(context.Background(), c); err != nil {
		t.Fatalf("runCigar() error = %v", err)
	}

	got, err := os.ReadFile(c.Out)
	if err != nil {
		t.Fatal(err)
	}
	want := "q1\t7\t+\t2M1D1M\nq2\t12\t+\t4M\n"
	if string(got) != want {
		t.Errorf("runCigar() wrote %q, want %q", got, want)
	}
}

func Test_runAlign_missingInput(t *testing.T) {
	c := writeInputs(t)
	c.Query = filepath.Join(t.TempDir(), "missing.fa")
	if err := runAlign(context.Background(), c); err == nil {
		t.Error("runAlign() with a missing query file succeeded")
	}
}
