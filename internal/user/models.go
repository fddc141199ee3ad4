package user

// User serializes as id, email and is_active; the password never leaves the
// server. The legacy projection was id and email only, and is_active is an
// additive field on top of it.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsActive bool   `json:"is_active"`
}

// CreateRequest carries the columns of a new user. IsActive defaults to true.
type CreateRequest struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	IsActive *bool  `json:"is_active,omitempty" yaml:"is_active,omitempty"`
}
