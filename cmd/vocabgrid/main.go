package main

import "github.com/mcoot/vocabgrid/internal/cli"

func main() {
	cli.Execute()
}
