package main

import (
	"os"

	"github.com/gobeaver/finfo/cmd/finfo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
