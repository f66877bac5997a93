package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/heimweh/cmd/heimweh"
	"github.com/arthur-debert/heimweh/internal/version"
)

func main() {
	rootCmd := heimweh.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HEIMWEH",
		Section: "1",
		Source:  "heimweh " + version.Version,
		Manual:  "heimweh manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
