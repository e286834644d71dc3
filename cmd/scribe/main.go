// Command scribe is a small terminal code editor built on the scribe
// editing core.
package main

import (
	"fmt"
	"os"

	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scribe <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, cfgErr := config.Load(config.DefaultPath())
	logger := log.New(log.ParseLevel(cfg.LogLevel), os.Stderr, "scribe")
	if cfgErr != nil {
		logger.Warnf("config: %v", cfgErr)
	}

	app, err := newApp(path, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
		os.Exit(1)
	}

	err = app.Run()
	app.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
		os.Exit(1)
	}
}
