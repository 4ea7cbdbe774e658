package models

import "time"

// User owns playlists. The API only ever sees users through the id in a bearer token.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username" validate:"notblank,max=64"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// NewUser builds an unsaved user; the digest is filled in by the repository.
func NewUser(username string) *User {
	now := time.Now().UTC()
	return &User{Username: username, CreatedAt: now, UpdatedAt: now}
}

// Validate checks the username and that a password digest is present.
func (u *User) Validate() error {
	problems := validateStruct(u)
	if u.PasswordDigest == "" {
		problems.Add("password", "can't be blank")
	}
	return problems.Err()
}
