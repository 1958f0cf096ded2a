package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable wraps backend failures so callers can test with
// errors.Is regardless of the concrete store.
var ErrUnavailable = errors.New("credential store unavailable")

// MobileIdentity is the phone identity a credential binds to. The
// country code is kept separate so capture forms can round-trip it.
type MobileIdentity struct {
	MobileNumber string `json:"mobileNumber"`
	CountryCode  string `json:"countryCode"`
}

// Full returns the dialable form, country code first.
func (m MobileIdentity) Full() string {
	return m.CountryCode + m.MobileNumber
}

// Valid reports whether both components are present.
func (m MobileIdentity) Valid() bool {
	return m.MobileNumber != "" && m.CountryCode != ""
}

// Credential is one stored push-verification enrollment.
type Credential struct {
	ID        string
	UserID    string
	Mobile    MobileIdentity
	Label     string
	CreatedAt time.Time
}

// Store persists credentials. Implementations do not enforce the
// one-credential-per-user rule; the enrollment flow maintains it by
// deleting before creating.
type Store interface {
	// Create stores a new credential for the user and returns it with
	// its generated identifier.
	Create(ctx context.Context, userID string, mobile MobileIdentity, label string) (*Credential, error)

	// DeleteAll removes every credential the user has. Deleting a user
	// with no credentials is not an error.
	DeleteAll(ctx context.Context, userID string) error

	// FindAny returns one credential for the user, newest first, or
	// (nil, nil) when the user has none.
	FindAny(ctx context.Context, userID string) (*Credential, error)
}

// EncodeMobile serializes a mobile identity into the JSON document
// stored in the credential data column.
func EncodeMobile(m MobileIdentity) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode credential data: %w", err)
	}
	return data, nil
}

// DecodeMobile parses a stored credential data document.
func DecodeMobile(data []byte) (MobileIdentity, error) {
	var m MobileIdentity
	if err := json.Unmarshal(data, &m); err != nil {
		return MobileIdentity{}, fmt.Errorf("decode credential data: %w", err)
	}
	return m, nil
}
