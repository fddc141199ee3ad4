package people

import (
	"context"
	"log/slog"

	"favorites-server/internal/favorite"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/errors"
)

// FavoriteGuard applies the catalog delete policy to favorites that point at
// the row being deleted.
type FavoriteGuard interface {
	DeleteTarget(ctx context.Context, target favorite.Target, deleteRow func(ctx context.Context, tx *database.Tx) error) error
}

type Service struct {
	repo      *Repository
	favorites FavoriteGuard
	logger    *slog.Logger
}

func NewService(repo *Repository, favorites FavoriteGuard, logger *slog.Logger) *Service {
	logger.Debug("Initializing people service")

	return &Service{
		repo:      repo,
		favorites: favorites,
		logger:    logger,
	}
}

func (s *Service) GetAllPeople(ctx context.Context) ([]Person, error) {
	people, err := s.repo.GetAllPeople(ctx)
	if err != nil {
		return nil, err
	}
	if people == nil {
		people = []Person{}
	}
	return people, nil
}

func (s *Service) GetPerson(ctx context.Context, id int) (*Person, error) {
	p, err := s.repo.GetPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFound("Character not found")
	}
	return p, nil
}

func (s *Service) CreatePerson(ctx context.Context, req CreateRequest) (*Person, error) {
	return s.repo.CreatePerson(ctx, req, nil)
}

func (s *Service) DeletePerson(ctx context.Context, id int) error {
	if _, err := s.GetPerson(ctx, id); err != nil {
		return err
	}

	return s.favorites.DeleteTarget(ctx, favorite.PersonTarget(id), func(ctx context.Context, tx *database.Tx) error {
		return s.repo.DeletePerson(ctx, id, tx)
	})
}

func (s *Service) GetPeopleCount(ctx context.Context) (int, error) {
	return s.repo.GetPeopleCount(ctx)
}
