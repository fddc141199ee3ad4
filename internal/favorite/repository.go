package favorite

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
	logger.Debug("Initializing favorite repository")

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row rowScanner) (*Favorite, error) {
	var (
		f                  Favorite
		peopleID, planetID sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.UserID, &peopleID, &planetID); err != nil {
		return nil, err
	}

	target, err := targetFromColumns(peopleID, planetID)
	if err != nil {
		return nil, apperrors.WrapInternal(fmt.Sprintf("favorite %d is invalid", f.ID), err)
	}
	f.Target = target

	return &f, nil
}

// CreateFavorite inserts without checking that the user or target exist; the
// foreign keys reject dangling references.
func (r *Repository) CreateFavorite(ctx context.Context, userID int, target Target, tx *database.Tx) (*Favorite, error) {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "favorite_repository", "operation", "create", "user_id", userID, "target", target.String())
	logger.Debug("Creating favorite")

	if err := target.Validate(); err != nil {
		return nil, apperrors.WrapInternal("failed to create favorite", err)
	}

	peopleID, planetID := target.columns()

	query := `
		INSERT INTO favorite (user_id, people_id, planet_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, people_id, planet_id
	`

	f, err := scanFavorite(exec.QueryRowContext(ctx, query, userID, peopleID, planetID))
	if err != nil {
		logger.Error("Failed to create favorite", "error", err)
		if database.IsConstraintViolation(err) {
			return nil, apperrors.WrapConstraint("failed to create favorite", err)
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	logger.Info("Favorite created", "favorite_id", f.ID)
	return f, nil
}

// FindByUserAndTarget returns the oldest matching favorite, or nil. A matched
// row that also sets the other foreign key is still returned with target, so
// it can be deleted.
func (r *Repository) FindByUserAndTarget(ctx context.Context, userID int, target Target) (*Favorite, error) {
	logger := r.logger.With("component", "favorite_repository", "operation", "find", "user_id", userID, "target", target.String())
	logger.Debug("Looking up favorite")

	if err := target.Validate(); err != nil {
		return nil, apperrors.WrapInternal("failed to find favorite", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, people_id, planet_id
		FROM favorite
		WHERE user_id = $1 AND %s = $2
		ORDER BY id
		LIMIT 1
	`, target.column())

	var (
		f                  Favorite
		peopleID, planetID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, userID, target.ID).Scan(&f.ID, &f.UserID, &peopleID, &planetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No matching favorite")
			return nil, nil
		}
		logger.Error("Database error looking up favorite", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	if _, err := targetFromColumns(peopleID, planetID); err != nil {
		logger.Warn("Favorite references both a person and a planet", "favorite_id", f.ID)
	}
	f.Target = target

	return &f, nil
}

func (r *Repository) DeleteFavorite(ctx context.Context, id int) error {
	logger := r.logger.With("component", "favorite_repository", "operation", "delete", "favorite_id", id)

	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorite WHERE id = $1`, id); err != nil {
		logger.Error("Failed to delete favorite", "error", err)
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	logger.Info("Favorite deleted")
	return nil
}

func (r *Repository) CountByTarget(ctx context.Context, target Target, tx *database.Tx) (int, error) {
	exec := r.getExecutor(tx)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM favorite WHERE %s = $1`, target.column())

	var count int
	if err := exec.QueryRowContext(ctx, query, target.ID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count favorites for %s: %w", target, err)
	}
	return count, nil
}

func (r *Repository) DeleteByTarget(ctx context.Context, target Target, tx *database.Tx) (int64, error) {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "favorite_repository", "operation", "delete_by_target", "target", target.String())

	query := fmt.Sprintf(`DELETE FROM favorite WHERE %s = $1`, target.column())

	result, err := exec.ExecContext(ctx, query, target.ID)
	if err != nil {
		logger.Error("Failed to delete favorites", "error", err)
		return 0, fmt.Errorf("failed to delete favorites for %s: %w", target, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	logger.Info("Favorites removed with their target", "count", removed)
	return removed, nil
}

func (r *Repository) GetFavoriteCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorite`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get favorite count: %w", err)
	}
	return count, nil
}
