package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"favorites-server/internal/favorite"
	"favorites-server/internal/people"
	"favorites-server/internal/planet"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/database/databasetest"
	"favorites-server/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	f, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	require.NotNil(t, f.Users[1].IsActive)
	assert.False(t, *f.Users[1].IsActive)
	assert.Nil(t, f.Users[0].IsActive)

	require.Len(t, f.Planets, 2)
	assert.Equal(t, "200000", *f.Planets[0].Population)
	assert.Equal(t, "unknown", *f.Planets[1].Population)

	require.Len(t, f.Favorites, 2)
	assert.Equal(t, favorite.TargetPlanet, f.Favorites[0].kind())
	assert.Equal(t, favorite.TargetPerson, f.Favorites[1].kind())
}

func TestParseRejectsAmbiguousFavorite(t *testing.T) {
	_, err := Parse([]byte(`
favorites:
  - user: luke@rebels.org
    person: Leia Organa
    planet: Hoth
`))
	assert.ErrorContains(t, err, "exactly one of person or planet")

	_, err = Parse([]byte(`
favorites:
  - user: luke@rebels.org
`))
	assert.Error(t, err)
}

func TestParseRejectsNamelessEntries(t *testing.T) {
	_, err := Parse([]byte("people:\n  - gender: male\n"))
	assert.ErrorContains(t, err, "people[0]")

	_, err = Parse([]byte("users:\n  - password: x\n"))
	assert.ErrorContains(t, err, "users[0]")
}

type repositories struct {
	db        *database.DB
	users     *user.Repository
	people    *people.Repository
	planets   *planet.Repository
	favorites *favorite.Repository
	logger    *slog.Logger
}

func newRepositories(t *testing.T) *repositories {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := databasetest.NewSQLite(t)

	return &repositories{
		db:        db,
		users:     user.NewRepository(db, logger),
		people:    people.NewRepository(db, logger),
		planets:   planet.NewRepository(db, logger),
		favorites: favorite.NewRepository(db, logger),
		logger:    logger,
	}
}

func (r *repositories) seeder() *Seeder {
	return NewSeeder(r.db, r.users, r.people, r.planets, r.favorites, r.logger)
}

func (r *repositories) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestApply(t *testing.T) {
	r := newRepositories(t)
	ctx := context.Background()

	f, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	summary, err := r.seeder().Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 2, People: 2, Planets: 2, Favorites: 2}, summary)

	var planetFavorite, personFavorite int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM favorite WHERE planet_id IS NOT NULL AND people_id IS NULL`).Scan(&planetFavorite))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM favorite WHERE people_id IS NOT NULL AND planet_id IS NULL`).Scan(&personFavorite))
	assert.Equal(t, 1, planetFavorite)
	assert.Equal(t, 1, personFavorite)

	_, err = r.seeder().Apply(ctx, f)
	assert.Error(t, err, "duplicate emails are rejected")
	assert.Equal(t, 2, r.count(t, `"user"`), "the failed run leaves no extra rows")
	assert.Equal(t, 2, r.count(t, "favorite"))
}

func TestApplyUnknownReference(t *testing.T) {
	r := newRepositories(t)

	f, err := Parse([]byte(`
users:
  - email: luke@rebels.org
    password: x
planets:
  - name: Hoth
favorites:
  - user: luke@rebels.org
    planet: Naboo
`))
	require.NoError(t, err)

	summary, err := r.seeder().Apply(context.Background(), f)
	assert.ErrorContains(t, err, `unknown planet "Naboo"`)
	assert.Equal(t, Summary{}, summary)

	assert.Zero(t, r.count(t, `"user"`), "users inserted before the failure are rolled back")
	assert.Zero(t, r.count(t, "planet"))
}
