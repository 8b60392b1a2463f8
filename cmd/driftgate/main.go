package main

import (
	"os"

	"github.com/dshills/driftgate/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
