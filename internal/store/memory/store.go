// Package memory keeps accounts and diary records in process memory. It
// backs tests and the STORE_BACKEND=memory development mode with the same
// semantics as the spreadsheet store.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
)

// Store implements account.Store and diary.RecordStore in memory.
type Store struct {
	mu       sync.RWMutex
	accounts []account.Account
	records  map[string][]diary.Record
}

// NewStore bootstraps an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string][]diary.Record),
	}
}

// FindUserID resolves an email to its user ID.
func (s *Store) FindUserID(_ context.Context, email string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.Email == email {
			return acc.UserID, nil
		}
	}
	return "", account.ErrNotFound
}

// CreateUser appends a credential row and provisions an empty record
// collection. Duplicate emails are appended as-is; lookups keep returning
// the first row, mirroring the spreadsheet scan.
func (s *Store) CreateUser(_ context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	userID := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, account.Account{
		Email:        email,
		PasswordHash: string(hash),
		UserID:       userID,
	})
	s.records[userID] = make([]diary.Record, 0)
	return userID, nil
}

// VerifyCredentials scans rows in insertion order; the first email match
// decides accept or reject.
func (s *Store) VerifyCredentials(_ context.Context, email, password string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
			return "", account.ErrBadCredentials
		}
		return acc.UserID, nil
	}
	return "", account.ErrNotFound
}

// AppendRecord adds one record to the user's collection.
func (s *Store) AppendRecord(_ context.Context, userID string, analysis diary.Analysis, text string, pos diary.Position) error {
	record := diary.Record{
		Timestamp: analysis.Timestamp,
		Emotion:   analysis.Emotion,
		Category:  analysis.Category,
		Text:      text,
		Position:  pos,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = append(s.records[userID], record)
	return nil
}

// ListRecords returns the user's records in insertion order. An unknown
// user ID is an empty, successful result.
func (s *Store) ListRecords(_ context.Context, userID string) ([]diary.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[userID]
	copied := make([]diary.Record, len(stored))
	copy(copied, stored)
	return copied, nil
}
