package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/errors"
)

type Service struct {
	repo   *Repository
	db     *database.DB
	policy config.DeletePolicy
	logger *slog.Logger
}

func NewService(repo *Repository, db *database.DB, policy config.DeletePolicy, logger *slog.Logger) *Service {
	logger.Debug("Initializing favorite service", "delete_policy", policy)

	return &Service{
		repo:   repo,
		db:     db,
		policy: policy,
		logger: logger,
	}
}

func (s *Service) AddFavorite(ctx context.Context, userID int, target Target) (*Favorite, error) {
	return s.repo.CreateFavorite(ctx, userID, target, nil)
}

// RemoveFavorite deletes the favorite matching userID and target. The lookup
// and the delete are separate statements.
func (s *Service) RemoveFavorite(ctx context.Context, userID int, target Target) error {
	f, err := s.repo.FindByUserAndTarget(ctx, userID, target)
	if err != nil {
		return err
	}
	if f == nil {
		return errors.NotFound("Favorite not found")
	}

	return s.repo.DeleteFavorite(ctx, f.ID)
}

// DeleteTarget removes a catalog row through deleteRow while applying the
// configured policy to favorites that still reference it. Under restrict the
// delete is refused with a conflict; under cascade the favorites and the row
// go in one transaction.
func (s *Service) DeleteTarget(ctx context.Context, target Target, deleteRow func(ctx context.Context, tx *database.Tx) error) error {
	logger := s.logger.With("component", "favorite_service", "operation", "delete_target", "target", target.String(), "policy", s.policy)

	if s.policy == config.DeletePolicyCascade {
		return s.db.WithTx(ctx, func(tx *database.Tx) error {
			if _, err := s.repo.DeleteByTarget(ctx, target, tx); err != nil {
				return err
			}
			return deleteRow(ctx, tx)
		})
	}

	count, err := s.repo.CountByTarget(ctx, target, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Refusing to delete favorited target", "favorites", count)
		return errors.Conflict(fmt.Sprintf("%s is still a favorite of %d user(s)", target.Label(), count))
	}

	return deleteRow(ctx, nil)
}

func (s *Service) GetFavoriteCount(ctx context.Context) (int, error) {
	return s.repo.GetFavoriteCount(ctx)
}
