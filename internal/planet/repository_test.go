package planet

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"favorites-server/internal/favorite"
	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/database/databasetest"
	apperrors "favorites-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newTestService(t *testing.T, policy config.DeletePolicy) (*Service, *database.DB) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := databasetest.NewSQLite(t)

	favorites := favorite.NewService(favorite.NewRepository(db, logger), db, policy, logger)
	return NewService(NewRepository(db, logger), favorites, logger), db
}

func TestCreatePlanetKeepsPopulationAsText(t *testing.T) {
	svc, _ := newTestService(t, config.DeletePolicyRestrict)
	ctx := context.Background()

	created, err := svc.CreatePlanet(ctx, CreateRequest{
		Name:       ptr("Tatooine"),
		Population: ptr("0200000"),
		Climate:    ptr("arid"),
		Terrain:    ptr("desert"),
	})
	require.NoError(t, err)

	got, err := svc.GetPlanet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0200000", *got.Population)
	assert.Equal(t, created, got)
}

func TestGetPlanetNotFound(t *testing.T) {
	svc, _ := newTestService(t, config.DeletePolicyRestrict)

	_, err := svc.GetPlanet(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
	assert.Equal(t, "Planet not found", err.Error())
}

func TestCreatePlanetWithoutName(t *testing.T) {
	svc, _ := newTestService(t, config.DeletePolicyRestrict)

	_, err := svc.CreatePlanet(context.Background(), CreateRequest{Climate: ptr("temperate")})
	assert.Equal(t, apperrors.ErrorTypeConstraint, apperrors.GetType(err))
}

func TestListAndDeletePlanets(t *testing.T) {
	svc, _ := newTestService(t, config.DeletePolicyRestrict)
	ctx := context.Background()

	var ids []int
	for _, name := range []string{"Tatooine", "Alderaan", "Hoth"} {
		p, err := svc.CreatePlanet(ctx, CreateRequest{Name: ptr(name)})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, svc.DeletePlanet(ctx, ids[1]))

	planets, err := svc.GetAllPlanets(ctx)
	require.NoError(t, err)
	require.Len(t, planets, 2)
	assert.Equal(t, "Tatooine", planets[0].Name)
	assert.Equal(t, "Hoth", planets[1].Name)

	count, err := svc.repo.GetPlanetCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(planets), count)

	err = svc.DeletePlanet(ctx, ids[1])
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestDeleteFavoritedPlanet(t *testing.T) {
	for _, policy := range []config.DeletePolicy{config.DeletePolicyRestrict, config.DeletePolicyCascade} {
		t.Run(string(policy), func(t *testing.T) {
			svc, db := newTestService(t, policy)
			ctx := context.Background()

			hoth, err := svc.CreatePlanet(ctx, CreateRequest{Name: ptr("Hoth")})
			require.NoError(t, err)

			var userID int
			require.NoError(t, db.QueryRowContext(ctx,
				`INSERT INTO "user" (email, password) VALUES ($1, $2) RETURNING id`, "han@rebels.org", "x").Scan(&userID))
			_, err = db.ExecContext(ctx, `INSERT INTO favorite (user_id, planet_id) VALUES ($1, $2)`, userID, hoth.ID)
			require.NoError(t, err)

			err = svc.DeletePlanet(ctx, hoth.ID)

			var favorites int
			require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorite`).Scan(&favorites))

			if policy == config.DeletePolicyRestrict {
				assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetType(err))
				assert.Equal(t, 1, favorites)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, favorites)
		})
	}
}
