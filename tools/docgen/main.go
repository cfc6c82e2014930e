// Package main generates CLI reference documentation for the markdown-pricer
// server binary and the mdp client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	mdp "github.com/donaldgifford/markdown-pricer/cmd/mdp/cmd"
	server "github.com/donaldgifford/markdown-pricer/cmd/markdown-pricer/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	for _, t := range []struct {
		dir  string
		root *cobra.Command
	}{
		{"markdown-pricer", server.Root()},
		{"mdp", mdp.Root()},
	} {
		dir := filepath.Join(*output, t.dir)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("creating output directory: %v", err)
		}

		t.root.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(t.root, dir); err != nil {
			log.Fatalf("generating %s docs: %v", t.dir, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}
