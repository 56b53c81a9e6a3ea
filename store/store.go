// Package store holds the records and errors shared by the SQL repositories.
package store

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: record not found")

// User is a site account.
type User struct {
	ID           uuid.UUID
	Account      string
	Name         string
	Email        string
	PasswordHash string
	Enabled      bool
}

// Language is a selectable display culture.
type Language struct {
	ID      string
	Name    string
	Enabled bool
	Seq     int
}
