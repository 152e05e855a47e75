package main

import (
	"os"

	"github.com/spigell/vetnav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
