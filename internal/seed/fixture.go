// Package seed loads catalog fixtures from YAML into the store.
package seed

import (
	"fmt"
	"os"

	"favorites-server/internal/favorite"
	"favorites-server/internal/people"
	"favorites-server/internal/planet"
	"favorites-server/internal/user"

	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Users     []user.CreateRequest   `yaml:"users"`
	People    []people.CreateRequest `yaml:"people"`
	Planets   []planet.CreateRequest `yaml:"planets"`
	Favorites []FavoriteFixture      `yaml:"favorites"`
}

// FavoriteFixture refers to rows of the same fixture by email and name.
// Exactly one of Person and Planet must be set.
type FavoriteFixture struct {
	User   string `yaml:"user"`
	Person string `yaml:"person,omitempty"`
	Planet string `yaml:"planet,omitempty"`
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (f *Fixture) validate() error {
	for i, u := range f.Users {
		if u.Email == "" {
			return fmt.Errorf("users[%d]: email is required", i)
		}
	}
	for i, p := range f.People {
		if p.Name == nil || *p.Name == "" {
			return fmt.Errorf("people[%d]: name is required", i)
		}
	}
	for i, p := range f.Planets {
		if p.Name == nil || *p.Name == "" {
			return fmt.Errorf("planets[%d]: name is required", i)
		}
	}
	for i, fav := range f.Favorites {
		if fav.User == "" {
			return fmt.Errorf("favorites[%d]: user is required", i)
		}
		if (fav.Person == "") == (fav.Planet == "") {
			return fmt.Errorf("favorites[%d]: exactly one of person or planet is required", i)
		}
	}
	return nil
}

// kind reports which catalog table the favorite refers to.
func (ff FavoriteFixture) kind() favorite.TargetKind {
	if ff.Person != "" {
		return favorite.TargetPerson
	}
	return favorite.TargetPlanet
}
