package planet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"favorites-server/internal/shared/database"
	apperrors "favorites-server/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *Repository) CreatePlanet(ctx context.Context, req CreateRequest, tx *database.Tx) (*Planet, error) {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "planet_repository", "operation", "create_planet")
	logger.Debug("Creating planet")

	query := `
		INSERT INTO planet (name, population, climate, terrain)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, population, climate, terrain
	`

	var planet Planet
	err := exec.QueryRowContext(ctx, query,
		nullString(req.Name), nullString(req.Population), nullString(req.Climate), nullString(req.Terrain),
	).Scan(
		&planet.ID,
		&planet.Name,
		&planet.Population,
		&planet.Climate,
		&planet.Terrain,
	)

	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		if database.IsConstraintViolation(err) {
			return nil, apperrors.WrapConstraint("failed to create planet", err)
		}
		return nil, fmt.Errorf("failed to create planet: %w", err)
	}

	logger.Debug("Planet created successfully", "planet_id", planet.ID)
	return &planet, nil
}

func (r *Repository) GetAllPlanets(ctx context.Context) ([]Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_all_planets")
	logger.Debug("Getting all planets")

	query := `
		SELECT id, name, population, climate, terrain
		FROM planet
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var planets []Planet
	for rows.Next() {
		var planet Planet
		err := rows.Scan(
			&planet.ID,
			&planet.Name,
			&planet.Population,
			&planet.Climate,
			&planet.Terrain,
		)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		planets = append(planets, planet)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating planet rows", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Retrieved planets", "count", len(planets))
	return planets, nil
}

func (r *Repository) GetPlanetByID(ctx context.Context, id int) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_planet_by_id", "planet_id", id)
	logger.Debug("Getting planet by ID")

	query := `
		SELECT id, name, population, climate, terrain
		FROM planet
		WHERE id = $1
	`

	var planet Planet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&planet.ID,
		&planet.Name,
		&planet.Population,
		&planet.Climate,
		&planet.Terrain,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No planet found with ID")
			return nil, nil
		}
		logger.Error("Database error getting planet by ID", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &planet, nil
}

func (r *Repository) DeletePlanet(ctx context.Context, id int, tx *database.Tx) error {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "planet_repository", "operation", "delete_planet", "planet_id", id)

	if _, err := exec.ExecContext(ctx, `DELETE FROM planet WHERE id = $1`, id); err != nil {
		logger.Error("Failed to delete planet", "error", err)
		if database.IsConstraintViolation(err) {
			return apperrors.WrapConstraint("failed to delete planet", err)
		}
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	logger.Info("Planet deleted")
	return nil
}

func (r *Repository) GetPlanetCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM planet`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get planet count: %w", err)
	}
	return count, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
