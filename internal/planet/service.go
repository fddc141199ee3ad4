package planet

import (
	"context"
	"log/slog"

	"favorites-server/internal/favorite"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/errors"
)

type FavoriteGuard interface {
	DeleteTarget(ctx context.Context, target favorite.Target, deleteRow func(ctx context.Context, tx *database.Tx) error) error
}

type Service struct {
	repo      *Repository
	favorites FavoriteGuard
	logger    *slog.Logger
}

func NewService(repo *Repository, favorites FavoriteGuard, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		repo:      repo,
		favorites: favorites,
		logger:    logger,
	}
}

func (s *Service) GetAllPlanets(ctx context.Context) ([]Planet, error) {
	planets, err := s.repo.GetAllPlanets(ctx)
	if err != nil {
		return nil, err
	}
	if planets == nil {
		planets = []Planet{}
	}
	return planets, nil
}

func (s *Service) GetPlanet(ctx context.Context, id int) (*Planet, error) {
	planet, err := s.repo.GetPlanetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if planet == nil {
		return nil, errors.NotFound("Planet not found")
	}
	return planet, nil
}

func (s *Service) CreatePlanet(ctx context.Context, req CreateRequest) (*Planet, error) {
	return s.repo.CreatePlanet(ctx, req, nil)
}

func (s *Service) DeletePlanet(ctx context.Context, id int) error {
	if _, err := s.GetPlanet(ctx, id); err != nil {
		return err
	}

	return s.favorites.DeleteTarget(ctx, favorite.PlanetTarget(id), func(ctx context.Context, tx *database.Tx) error {
		return s.repo.DeletePlanet(ctx, id, tx)
	})
}

func (s *Service) GetPlanetCount(ctx context.Context) (int, error) {
	return s.repo.GetPlanetCount(ctx)
}
