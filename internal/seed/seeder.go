package seed

import (
	"context"
	"fmt"
	"log/slog"

	"favorites-server/internal/favorite"
	"favorites-server/internal/people"
	"favorites-server/internal/planet"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/user"
)

// TxRunner runs fn in a single transaction. *database.DB satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *database.Tx) error) error
}

type UserCreator interface {
	CreateUser(ctx context.Context, req user.CreateRequest, tx *database.Tx) (*user.User, error)
}

type PersonCreator interface {
	CreatePerson(ctx context.Context, req people.CreateRequest, tx *database.Tx) (*people.Person, error)
}

type PlanetCreator interface {
	CreatePlanet(ctx context.Context, req planet.CreateRequest, tx *database.Tx) (*planet.Planet, error)
}

type FavoriteCreator interface {
	CreateFavorite(ctx context.Context, userID int, target favorite.Target, tx *database.Tx) (*favorite.Favorite, error)
}

type Summary struct {
	Users     int
	People    int
	Planets   int
	Favorites int
}

type Seeder struct {
	db        TxRunner
	users     UserCreator
	people    PersonCreator
	planets   PlanetCreator
	favorites FavoriteCreator
	logger    *slog.Logger
}

func NewSeeder(db TxRunner, users UserCreator, people PersonCreator, planets PlanetCreator, favorites FavoriteCreator, logger *slog.Logger) *Seeder {
	return &Seeder{
		db:        db,
		users:     users,
		people:    people,
		planets:   planets,
		favorites: favorites,
		logger:    logger,
	}
}

// Apply inserts the fixture in dependency order inside one transaction, so a
// failure leaves the database as it was. Rows are not deduplicated, so
// applying the same fixture twice fails on the unique email.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Summary, error) {
	logger := s.logger.With("component", "seeder", "operation", "apply")

	var summary Summary
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		summary = Summary{}
		return s.apply(ctx, f, tx, &summary)
	})
	if err != nil {
		logger.Error("Fixture rolled back", "error", err)
		return Summary{}, err
	}

	logger.Info("Fixture applied",
		"users", summary.Users,
		"people", summary.People,
		"planets", summary.Planets,
		"favorites", summary.Favorites,
	)
	return summary, nil
}

func (s *Seeder) apply(ctx context.Context, f *Fixture, tx *database.Tx, summary *Summary) error {
	userIDs := make(map[string]int, len(f.Users))
	for _, req := range f.Users {
		u, err := s.users.CreateUser(ctx, req, tx)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", req.Email, err)
		}
		userIDs[u.Email] = u.ID
		summary.Users++
	}

	personIDs := make(map[string]int, len(f.People))
	for _, req := range f.People {
		p, err := s.people.CreatePerson(ctx, req, tx)
		if err != nil {
			return fmt.Errorf("failed to seed person %s: %w", *req.Name, err)
		}
		personIDs[p.Name] = p.ID
		summary.People++
	}

	planetIDs := make(map[string]int, len(f.Planets))
	for _, req := range f.Planets {
		p, err := s.planets.CreatePlanet(ctx, req, tx)
		if err != nil {
			return fmt.Errorf("failed to seed planet %s: %w", *req.Name, err)
		}
		planetIDs[p.Name] = p.ID
		summary.Planets++
	}

	for i, ff := range f.Favorites {
		userID, ok := userIDs[ff.User]
		if !ok {
			return fmt.Errorf("favorites[%d]: unknown user %q", i, ff.User)
		}

		var target favorite.Target
		switch ff.kind() {
		case favorite.TargetPerson:
			id, ok := personIDs[ff.Person]
			if !ok {
				return fmt.Errorf("favorites[%d]: unknown person %q", i, ff.Person)
			}
			target = favorite.PersonTarget(id)
		default:
			id, ok := planetIDs[ff.Planet]
			if !ok {
				return fmt.Errorf("favorites[%d]: unknown planet %q", i, ff.Planet)
			}
			target = favorite.PlanetTarget(id)
		}

		if _, err := s.favorites.CreateFavorite(ctx, userID, target, tx); err != nil {
			return fmt.Errorf("failed to seed favorite %s for %s: %w", target, ff.User, err)
		}
		summary.Favorites++
	}

	return nil
}
