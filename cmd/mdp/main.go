// Package main is the entry point for the mdp CLI client.
package main

import (
	"github.com/donaldgifford/markdown-pricer/cmd/mdp/cmd"
)

func main() {
	cmd.Execute()
}
