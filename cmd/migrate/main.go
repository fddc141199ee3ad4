package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/logger"
)

const usage = `usage: migrate <command>

commands:
  up       apply all pending migrations
  down     revert every migration
  version  print the current schema version
`

func main() {
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		slog.Error("Migration command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg)

	mg, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			slog.Error("Failed to close migrator", "error", err)
		}
	}()

	switch command {
	case "up":
		return mg.Up()
	case "down":
		return mg.Down()
	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
