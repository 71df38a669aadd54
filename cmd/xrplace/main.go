package main

import (
	"fmt"
	"os"

	"xrplace/internal/app"
	"xrplace/internal/config"
	"xrplace/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	a := app.New(cfg, log)
	if err := a.Run(); err != nil {
		log.Error().Err(err).Msg("application failed")
		os.Exit(1)
	}
}
