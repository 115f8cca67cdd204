package main

import (
	"os"

	"github.com/rustyeddy/cointax/cmd/cointax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
