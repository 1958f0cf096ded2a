package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres persists credentials in PostgreSQL. The schema keeps the
// mobile identity as a JSON document so new identity fields do not need
// migrations:
//
//	CREATE TABLE push_credentials (
//	    id              UUID PRIMARY KEY,
//	    user_id         TEXT NOT NULL,
//	    label           TEXT NOT NULL,
//	    credential_data JSONB NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX push_credentials_user_idx ON push_credentials (user_id, created_at DESC);
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed credential store.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, userID string, mobile MobileIdentity, label string) (*Credential, error) {
	data, err := EncodeMobile(mobile)
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mobile:    mobile,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}

	const query = `INSERT INTO push_credentials (id, user_id, label, credential_data, created_at)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.Exec(ctx, query, cred.ID, cred.UserID, cred.Label, data, cred.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return cred, nil
}

func (s *Postgres) DeleteAll(ctx context.Context, userID string) error {
	const query = `DELETE FROM push_credentials WHERE user_id = $1`
	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Postgres) FindAny(ctx context.Context, userID string) (*Credential, error) {
	const query = `
        SELECT id, user_id, label, credential_data, created_at
        FROM push_credentials
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1`

	var (
		cred Credential
		data []byte
	)
	err := s.db.QueryRow(ctx, query, userID).Scan(&cred.ID, &cred.UserID, &cred.Label, &data, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	mobile, err := DecodeMobile(data)
	if err != nil {
		return nil, err
	}
	cred.Mobile = mobile

	return &cred, nil
}
