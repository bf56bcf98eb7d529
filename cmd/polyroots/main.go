package main

import (
	"os"

	"github.com/njchilds90/polyroots/cmd/polyroots/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
