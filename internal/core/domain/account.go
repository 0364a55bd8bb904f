package domain

import (
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAccountOwner = errors.New("not the account owner")
var ErrNotLoggedIn = errors.New("not logged in")

// Account is the sole persisted entity: a WorkEat user with credentials,
// profile fields, and role flags.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	PostalCode   string `json:"postalCode"`
	Town         string `json:"town"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`

	// Role flags are never settable through the account operations; they
	// default to false and are only ever read back.
	IsAdmin       bool `json:"isAdmin"`
	IsLivreur     bool `json:"isLivreur"`
	IsPrestataire bool `json:"isPrestataire"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
