package main

import (
	"os"

	"github.com/codywizlet/arse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
