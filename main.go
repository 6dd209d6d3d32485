package main

import (
	"os"

	"github.com/heathj/htmltok/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
