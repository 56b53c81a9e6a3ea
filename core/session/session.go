package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents a user session with generic data storage.
// The Data type parameter allows custom session data structures specific to your application.
type Session[Data any] struct {
	// ID is the stable unique session identifier that never changes during the session lifecycle
	ID uuid.UUID `json:"id"`

	// Token is the cryptographically secure session token (32 bytes base64url),
	// carried by the client in a signed cookie.
	Token string `json:"token"`

	// UserID identifies the authenticated user (uuid.Nil for anonymous sessions)
	UserID uuid.UUID `json:"user_id"`

	// Data holds custom application-specific session information.
	Data Data `json:"data"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitzero"`

	// isModified tracks if the session needs saving
	isModified bool
}

// New creates a new anonymous session with generated token and ID.
// The session is marked as modified and ready to be saved.
func New[Data any](ttl time.Duration) (Session[Data], error) {
	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:         uuid.New(),
		Token:      token,
		UserID:     uuid.Nil,
		Data:       *new(Data),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// Authenticate binds the session to userID and rotates the token.
// The session ID is preserved. Optional data replaces the session data.
func (s *Session[Data]) Authenticate(userID uuid.UUID, data ...Data) error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	if len(data) > 0 {
		s.Data = data[0]
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Logout marks the session for deletion by setting DeletedAt timestamp.
func (s *Session[Data]) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData updates the session's custom data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends the session expiration if the touch interval has elapsed.
// Reports whether the expiration changed.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) bool {
	if time.Since(s.UpdatedAt) < touchInterval {
		return false
	}
	now := time.Now()
	s.ExpiresAt = now.Add(ttl)
	s.UpdatedAt = now
	s.isModified = true
	return true
}

// IsAuthenticated returns true if the session has a valid user ID.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != ""
}

// IsDeleted returns true if the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// rotateToken generates a new token while preserving the session ID.
func (s *Session[Data]) rotateToken() error {
	newToken, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = newToken
	s.isModified = true
	return nil
}

// generateToken creates a cryptographically secure random token using 32 bytes (256 bits)
// encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
