package favorite

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// TargetKind names the catalog table a favorite points at.
type TargetKind string

const (
	TargetPerson TargetKind = "people"
	TargetPlanet TargetKind = "planet"
)

// Target is the one catalog entry a favorite references. The table keeps two
// nullable foreign keys; exactly one of them is set for a valid row.
type Target struct {
	Kind TargetKind
	ID   int
}

func PersonTarget(id int) Target {
	return Target{Kind: TargetPerson, ID: id}
}

func PlanetTarget(id int) Target {
	return Target{Kind: TargetPlanet, ID: id}
}

func (t Target) Validate() error {
	switch t.Kind {
	case TargetPerson, TargetPlanet:
		return nil
	default:
		return fmt.Errorf("unknown favorite target kind %q", t.Kind)
	}
}

// column is the favorite table column holding this target's id.
func (t Target) column() string {
	if t.Kind == TargetPerson {
		return "people_id"
	}
	return "planet_id"
}

// Noun is how responses refer to the target ("person" or "planet").
func (t Target) Noun() string {
	if t.Kind == TargetPerson {
		return "person"
	}
	return "planet"
}

// Label matches the catalog's own wording in error messages.
func (t Target) Label() string {
	if t.Kind == TargetPerson {
		return "Character"
	}
	return "Planet"
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// columns splits the target into the (people_id, planet_id) pair.
func (t Target) columns() (peopleID, planetID sql.NullInt64) {
	switch t.Kind {
	case TargetPerson:
		peopleID = sql.NullInt64{Int64: int64(t.ID), Valid: true}
	case TargetPlanet:
		planetID = sql.NullInt64{Int64: int64(t.ID), Valid: true}
	}
	return peopleID, planetID
}

// targetFromColumns rejects rows with neither or both foreign keys set.
func targetFromColumns(peopleID, planetID sql.NullInt64) (Target, error) {
	switch {
	case peopleID.Valid && planetID.Valid:
		return Target{}, fmt.Errorf("favorite references both person %d and planet %d", peopleID.Int64, planetID.Int64)
	case peopleID.Valid:
		return PersonTarget(int(peopleID.Int64)), nil
	case planetID.Valid:
		return PlanetTarget(int(planetID.Int64)), nil
	default:
		return Target{}, fmt.Errorf("favorite references neither a person nor a planet")
	}
}

type Favorite struct {
	ID     int
	UserID int
	Target Target
}

type favoriteJSON struct {
	ID       int  `json:"id"`
	UserID   int  `json:"user_id"`
	PeopleID *int `json:"people_id"`
	PlanetID *int `json:"planet_id"`
}

// MarshalJSON renders the flat column projection; the unused key is null.
func (f Favorite) MarshalJSON() ([]byte, error) {
	out := favoriteJSON{ID: f.ID, UserID: f.UserID}

	id := f.Target.ID
	switch f.Target.Kind {
	case TargetPerson:
		out.PeopleID = &id
	case TargetPlanet:
		out.PlanetID = &id
	}

	return json.Marshal(out)
}

// Request is the body of the favorite endpoints.
type Request struct {
	UserID *int `json:"user_id"`
}
