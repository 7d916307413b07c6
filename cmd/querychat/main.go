package main

import (
	"os"

	"ai-querychat-be/cmd/querychat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
