package main

import (
	"fmt"
	"os"

	"github.com/nightsky/seqview/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration is loaded after flag parsing so --config can replace a
	// broken default file.
	app := ui.NewApp(nil)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
