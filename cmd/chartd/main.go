package main

import (
	"os"

	"github.com/rustyeddy/chartd/cmd/chartd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
