package main

import (
	"os"

	"github.com/dshills/envhook/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
