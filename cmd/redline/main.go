package main

import (
	"os"

	"github.com/redlinehq/redline/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
