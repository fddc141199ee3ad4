package people

// Person is a character of the catalog. Optional columns stay null when unset.
type Person struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Gender    *string `json:"gender"`
	BirthYear *string `json:"birth_year"`
	EyeColor  *string `json:"eye_color"`
}

// CreateRequest mirrors the POST /people body. A missing name is left to the
// NOT NULL constraint.
type CreateRequest struct {
	Name      *string `json:"name" yaml:"name"`
	Gender    *string `json:"gender" yaml:"gender"`
	BirthYear *string `json:"birth_year" yaml:"birth_year"`
	EyeColor  *string `json:"eye_color" yaml:"eye_color"`
}
