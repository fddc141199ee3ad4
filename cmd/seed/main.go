package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"favorites-server/internal/favorite"
	"favorites-server/internal/people"
	"favorites-server/internal/planet"
	"favorites-server/internal/seed"
	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/logger"
	"favorites-server/internal/user"
)

func main() {
	file := flag.String("file", "fixtures/catalog.yaml", "YAML fixture to load")
	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	flag.Parse()

	if err := run(*file, *migrate); err != nil {
		slog.Error("Seeding failed", "file", *file, "error", err)
		os.Exit(1)
	}
}

func run(file string, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.Init(cfg)

	fixture, err := seed.LoadFile(file)
	if err != nil {
		return err
	}

	if migrate {
		if err := database.MigrateUp(cfg.Database); err != nil {
			return err
		}
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	seeder := seed.NewSeeder(
		db,
		user.NewRepository(db, appLogger),
		people.NewRepository(db, appLogger),
		planet.NewRepository(db, appLogger),
		favorite.NewRepository(db, appLogger),
		appLogger,
	)

	summary, err := seeder.Apply(ctx, fixture)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d users, %d people, %d planets, %d favorites\n",
		summary.Users, summary.People, summary.Planets, summary.Favorites)
	return nil
}
