package credstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store for tests and single-node embeddings.
type Memory struct {
	mu    sync.RWMutex
	byUID map[string][]*Credential
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byUID: make(map[string][]*Credential),
	}
}

func (s *Memory) Create(_ context.Context, userID string, mobile MobileIdentity, label string) (*Credential, error) {
	cred := &Credential{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mobile:    mobile,
		Label:     label,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUID[userID] = append(s.byUID[userID], cred)

	out := *cred
	return &out, nil
}

func (s *Memory) DeleteAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUID, userID)
	return nil
}

func (s *Memory) FindAny(_ context.Context, userID string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := s.byUID[userID]
	if len(creds) == 0 {
		return nil, nil
	}

	newest := creds[0]
	for _, c := range creds[1:] {
		if c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}

	out := *newest
	return &out, nil
}

// Count reports how many credentials a user has. Test helper.
func (s *Memory) Count(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUID[userID])
}
