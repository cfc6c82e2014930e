// Package main is the entry point for the markdown-pricer service.
package main

import (
	"os"

	"github.com/donaldgifford/markdown-pricer/cmd/markdown-pricer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
