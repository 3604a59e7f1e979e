package main

import (
	"os"

	"github.com/krishanu7/sinkorsail/config"
	"github.com/krishanu7/sinkorsail/internal/console"
	"github.com/krishanu7/sinkorsail/internal/game"
)

func main() {
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg)

	// Every match of the session draws from the same source.
	rng := cfg.NewRand()
	newRand := func() game.Rand { return rng }

	if err := console.New(os.Stdin, os.Stdout, newRand, logger).Run(); err != nil {
		logger.Fatal("Console session failed", "err", err)
	}
}
