package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/dshills/envhook/internal/cli"
)

func main() {
	header := &doc.GenManHeader{
		Title:   "ENVHOOK",
		Section: "1",
		Source:  "envhook " + cli.Version(),
		Manual:  "envhook manual",
	}

	if err := doc.GenMan(cli.RootCommand(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
