package people

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
	logger.Debug("Initializing people repository")

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

func (r *Repository) GetAllPeople(ctx context.Context) ([]Person, error) {
	logger := r.logger.With("component", "people_repository", "operation", "get_all")
	logger.Debug("Retrieving all people")

	query := `
		SELECT id, name, gender, birth_year, eye_color
		FROM people
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query people", "error", err)
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &p.BirthYear, &p.EyeColor); err != nil {
			logger.Error("Failed to scan person row", "error", err)
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	logger.Debug("People retrieved successfully", "count", len(people))
	return people, nil
}

func (r *Repository) GetPersonByID(ctx context.Context, id int) (*Person, error) {
	logger := r.logger.With("component", "people_repository", "operation", "get_by_id", "person_id", id)
	logger.Debug("Getting person by ID")

	query := `
		SELECT id, name, gender, birth_year, eye_color
		FROM people
		WHERE id = $1
	`

	var p Person
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Gender, &p.BirthYear, &p.EyeColor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No person found with ID")
			return nil, nil
		}
		logger.Error("Database error getting person by ID", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &p, nil
}

func (r *Repository) CreatePerson(ctx context.Context, req CreateRequest, tx *database.Tx) (*Person, error) {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "people_repository", "operation", "create")
	logger.Debug("Creating person")

	query := `
		INSERT INTO people (name, gender, birth_year, eye_color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, gender, birth_year, eye_color
	`

	var p Person
	err := exec.QueryRowContext(ctx, query,
		nullString(req.Name), nullString(req.Gender), nullString(req.BirthYear), nullString(req.EyeColor),
	).Scan(&p.ID, &p.Name, &p.Gender, &p.BirthYear, &p.EyeColor)
	if err != nil {
		logger.Error("Failed to create person", "error", err)
		if database.IsConstraintViolation(err) {
			return nil, apperrors.WrapConstraint("failed to create person", err)
		}
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	logger.Info("Person created successfully", "person_id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *Repository) DeletePerson(ctx context.Context, id int, tx *database.Tx) error {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "people_repository", "operation", "delete", "person_id", id)

	if _, err := exec.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id); err != nil {
		logger.Error("Failed to delete person", "error", err)
		if database.IsConstraintViolation(err) {
			return apperrors.WrapConstraint("failed to delete person", err)
		}
		return fmt.Errorf("failed to delete person: %w", err)
	}

	logger.Info("Person deleted")
	return nil
}

func (r *Repository) GetPeopleCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get people count: %w", err)
	}
	return count, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
