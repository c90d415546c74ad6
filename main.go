package main

import (
	"os"

	"github.com/hacktoolkit/nextjs-htk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
