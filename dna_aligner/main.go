package main

import (
	"github.com/nextstrain/nextclade-sub002/dna_aligner/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
