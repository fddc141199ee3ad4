package user

import (
	"context"
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
	logger.Debug("Initializing user repository")

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

func (r *Repository) GetAllUsers(ctx context.Context) ([]User, error) {
	logger := r.logger.With("component", "user_repository", "operation", "get_all")
	logger.Debug("Retrieving all users")

	query := `
		SELECT id, email, password, is_active
		FROM "user"
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query users", "error", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password, &u.IsActive); err != nil {
			logger.Error("Failed to scan user row", "error", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	logger.Debug("Users retrieved successfully", "count", len(users))
	return users, nil
}

func (r *Repository) CreateUser(ctx context.Context, req CreateRequest, tx *database.Tx) (*User, error) {
	exec := r.getExecutor(tx)
	logger := r.logger.With("component", "user_repository", "operation", "create", "email", req.Email)
	logger.Info("Creating new user")

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO "user" (email, password, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, email, password, is_active
	`

	var u User
	err := exec.QueryRowContext(ctx, query, req.Email, req.Password, isActive).Scan(&u.ID, &u.Email, &u.Password, &u.IsActive)
	if err != nil {
		logger.Error("Failed to create user", "error", err)
		if database.IsConstraintViolation(err) {
			return nil, apperrors.WrapConstraint("failed to create user", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully", "user_id", u.ID)
	return &u, nil
}

func (r *Repository) GetUserCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get user count: %w", err)
	}
	return count, nil
}
