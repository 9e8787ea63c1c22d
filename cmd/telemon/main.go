package main

import (
	"os"

	"github.com/bnema/telecom-usage-monitor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
