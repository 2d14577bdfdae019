package main

import (
	"os"

	"github.com/metaphox/storyscript/cmd/storyscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
