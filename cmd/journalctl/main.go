package main

import (
	"os"

	"crypto-trade-journal/cmd/journalctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
