package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"reliefdesk/internal/console"
	"reliefdesk/internal/donation"
	"reliefdesk/internal/infra"
)

func main() {
	infra.LoadEnvFiles()

	var (
		localeFlag  string
		idsFlag     string
		presetsFlag string
		verboseFlag bool
	)
	flag.StringVar(&localeFlag, "locale", envOr("DEFAULT_LOCALE", "en"), "message locale (en, id)")
	flag.StringVar(&idsFlag, "ids", envOr("DONATION_ID_SCHEME", donation.IDSchemeRandom), "donation id scheme (random, sequence, uuid)")
	flag.StringVar(&presetsFlag, "presets", "", "comma separated preset amounts (defaults to PRESET_AMOUNTS)")
	flag.BoolVar(&verboseFlag, "v", false, "log session events to stderr")
	flag.Parse()

	if presetsFlag != "" {
		if err := os.Setenv("PRESET_AMOUNTS", presetsFlag); err != nil {
			exitWithError(err)
		}
	}
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ids, err := donation.NewIDSource(idsFlag)
	if err != nil {
		exitWithError(err)
	}

	logger := infra.NewLoggerTo("cli", os.Stderr).With().Str("cmd", "donate").Logger()
	if !verboseFlag {
		logger = logger.Level(zerolog.Disabled)
	}

	manager, err := donation.NewManager(donation.Options{
		Presets: cfg.PresetAmounts,
		IDs:     ids,
		Logger:  logger,
	})
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Relief donation console. Type help for commands.")
	if err := console.New(manager, strings.TrimSpace(localeFlag), os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		exitWithError(err)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
