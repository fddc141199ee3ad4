package favorite

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"favorites-server/internal/shared/config"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/database/databasetest"
	apperrors "favorites-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *database.DB
	repo     *Repository
	userID   int
	personID int
	planetID int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := databasetest.NewSQLite(t)

	f := &fixture{db: db, repo: NewRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))}
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO "user" (email, password) VALUES ($1, $2) RETURNING id`, "luke@rebels.org", "x").Scan(&f.userID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO people (name) VALUES ($1) RETURNING id`, "Luke Skywalker").Scan(&f.personID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO planet (name, population) VALUES ($1, $2) RETURNING id`, "Tatooine", "200000").Scan(&f.planetID))

	return f
}

func (f *fixture) service(policy config.DeletePolicy) *Service {
	return NewService(f.repo, f.db, policy, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAndFindFavorite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.CreateFavorite(ctx, f.userID, PlanetTarget(f.planetID), nil)
	require.NoError(t, err)
	assert.Equal(t, f.userID, created.UserID)
	assert.Equal(t, PlanetTarget(f.planetID), created.Target)

	found, err := f.repo.FindByUserAndTarget(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// same id, other kind
	missing, err := f.repo.FindByUserAndTarget(ctx, f.userID, PersonTarget(f.planetID))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateFavoriteDanglingReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.CreateFavorite(ctx, f.userID, PersonTarget(999), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConstraint, apperrors.GetType(err))

	_, err = f.repo.CreateFavorite(ctx, 999, PersonTarget(f.personID), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConstraint, apperrors.GetType(err))
}

func TestDuplicateFavoritesAreAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repo.CreateFavorite(ctx, f.userID, PersonTarget(f.personID), nil)
	require.NoError(t, err)
	_, err = f.repo.CreateFavorite(ctx, f.userID, PersonTarget(f.personID), nil)
	require.NoError(t, err)

	found, err := f.repo.FindByUserAndTarget(ctx, f.userID, PersonTarget(f.personID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID, "oldest match wins")

	count, err := f.repo.GetFavoriteCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCreateFavoriteInTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := f.repo.CreateFavorite(ctx, f.userID, PersonTarget(f.personID), tx); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	count, err := f.repo.GetFavoriteCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemoveFavoriteWithBothTargetsSet(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyRestrict)
	ctx := context.Background()

	var id int
	require.NoError(t, f.db.QueryRowContext(ctx,
		`INSERT INTO favorite (user_id, people_id, planet_id) VALUES ($1, $2, $3) RETURNING id`,
		f.userID, f.personID, f.planetID).Scan(&id))

	found, err := f.repo.FindByUserAndTarget(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, PlanetTarget(f.planetID), found.Target)

	require.NoError(t, svc.RemoveFavorite(ctx, f.userID, PlanetTarget(f.planetID)))

	count, err := f.repo.GetFavoriteCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemoveFavorite(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyRestrict)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(ctx, f.userID, PlanetTarget(f.planetID)))

	err = svc.RemoveFavorite(ctx, f.userID, PlanetTarget(f.planetID))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
	assert.Equal(t, "Favorite not found", err.Error())
}

func TestRemoveFavoriteOtherUserUntouched(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyRestrict)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, f.userID, PersonTarget(f.personID))
	require.NoError(t, err)

	err = svc.RemoveFavorite(ctx, f.userID+1, PersonTarget(f.personID))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))

	count, err := f.repo.CountByTarget(ctx, PersonTarget(f.personID), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func deletePlanetRow(db *database.DB, id int) func(context.Context, *database.Tx) error {
	return func(ctx context.Context, tx *database.Tx) error {
		var exec database.Executor = db
		if tx != nil {
			exec = tx
		}
		_, err := exec.ExecContext(ctx, `DELETE FROM planet WHERE id = $1`, id)
		return err
	}
}

func TestDeleteTargetRestrict(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyRestrict)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)

	err = svc.DeleteTarget(ctx, PlanetTarget(f.planetID), deletePlanetRow(f.db, f.planetID))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetType(err))

	var planets int
	require.NoError(t, f.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM planet`).Scan(&planets))
	assert.Equal(t, 1, planets)

	require.NoError(t, svc.RemoveFavorite(ctx, f.userID, PlanetTarget(f.planetID)))
	require.NoError(t, svc.DeleteTarget(ctx, PlanetTarget(f.planetID), deletePlanetRow(f.db, f.planetID)))
}

func TestDeleteTargetCascade(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyCascade)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)
	_, err = svc.AddFavorite(ctx, f.userID, PersonTarget(f.personID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTarget(ctx, PlanetTarget(f.planetID), deletePlanetRow(f.db, f.planetID)))

	planetFavorites, err := f.repo.CountByTarget(ctx, PlanetTarget(f.planetID), nil)
	require.NoError(t, err)
	assert.Zero(t, planetFavorites)

	personFavorites, err := f.repo.CountByTarget(ctx, PersonTarget(f.personID), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, personFavorites)
}

func TestDeleteTargetCascadeRollsBack(t *testing.T) {
	f := newFixture(t)
	svc := f.service(config.DeletePolicyCascade)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, f.userID, PlanetTarget(f.planetID))
	require.NoError(t, err)

	err = svc.DeleteTarget(ctx, PlanetTarget(f.planetID), func(context.Context, *database.Tx) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	count, err := f.repo.CountByTarget(ctx, PlanetTarget(f.planetID), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
