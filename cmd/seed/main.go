package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/fairway/internal/seed"
	"github.com/okian/fairway/pkg/logger"
)

// Default generation sizes.
const (
	defaultSessions     = 5
	defaultShotsPerClub = 10
	defaultRounds       = 3
)

func main() {
	var (
		dataDir      = flag.String("data", "data", "Root data directory to seed")
		sessions     = flag.Int("sessions", defaultSessions, "Number of session files to generate")
		shotsPerClub = flag.Int("shots", defaultShotsPerClub, "Shots per club in each session")
		rounds       = flag.Int("rounds", defaultRounds, "Number of round files to generate")
		verbose      = flag.Bool("verbose", false, "Log each generated file")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg := &seed.Config{
		DataDir:      *dataDir,
		Sessions:     *sessions,
		ShotsPerClub: *shotsPerClub,
		Rounds:       *rounds,
		Verbose:      *verbose,
	}

	if err := seed.Run(context.Background(), cfg); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		return
	}
}
