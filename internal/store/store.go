// Package store reads and writes the persisted account collection.
//
// The collection is a single JSON document holding an array of accounts.
// Every read loads the full document and every mutation rewrites it in
// full. There is no locking: concurrent writers can clobber each other,
// which is acceptable for a single-poller deployment only.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ternarybob/hunter/internal/logger"
)

var (
	// ErrStorageUnavailable indicates the backing document is missing.
	ErrStorageUnavailable = errors.New("account storage unavailable")
	// ErrMalformedData indicates the backing document cannot be parsed.
	ErrMalformedData = errors.New("account data malformed")
)

// Store provides access to the persisted account collection.
type Store struct {
	path string
}

// New creates a Store backed by the JSON document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the entire collection, surfacing the error taxonomy.
func (s *Store) Load() ([]Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	return accounts, nil
}

// LoadAll reads the entire collection, degrading to an empty slice with a
// warning when the document is missing or unparseable. Callers treat empty
// as "no data available".
func (s *Store) LoadAll() []Account {
	accounts, err := s.Load()
	if err != nil {
		logger.GetLogger().Warn().Err(err).Str("path", s.path).Msg("Account data unavailable")
		return nil
	}
	return accounts
}

// FilterHighIntent returns unprocessed accounts with intent_score >= threshold,
// preserving store order.
func (s *Store) FilterHighIntent(threshold int) []Account {
	accounts := s.LoadAll()

	var high []Account
	for _, a := range accounts {
		if a.IntentScore >= threshold && !a.Processed {
			high = append(high, a)
		}
	}

	logger.GetLogger().Debug().
		Int("total", len(accounts)).
		Int("high_intent", len(high)).
		Int("threshold", threshold).
		Msg("Filtered high-intent accounts")

	return high
}

// GetByID returns the account with the given id, if present.
func (s *Store) GetByID(accountID string) (Account, bool) {
	for _, a := range s.LoadAll() {
		if a.AccountID == accountID {
			return a, true
		}
	}
	return Account{}, false
}

// MarkProcessed sets processed=true on the account with the given id and
// rewrites the collection. Returns false when the id is absent. This is a
// read-modify-write with no concurrency protection.
func (s *Store) MarkProcessed(accountID string) bool {
	accounts, err := s.Load()
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("Cannot mark account processed")
		return false
	}

	found := false
	for i := range accounts {
		if accounts[i].AccountID == accountID {
			accounts[i].Processed = true
			found = true
			break
		}
	}

	if !found {
		logger.GetLogger().Warn().Str("account_id", accountID).Msg("Account not found")
		return false
	}

	if err := s.saveAll(accounts); err != nil {
		logger.GetLogger().Error().Err(err).Str("account_id", accountID).Msg("Failed to persist processed flag")
		return false
	}

	logger.GetLogger().Info().Str("account_id", accountID).Msg("Marked account as processed")
	return true
}

// ResetProcessed sets processed=false on every account and rewrites the
// collection.
func (s *Store) ResetProcessed() error {
	accounts, err := s.Load()
	if err != nil {
		return err
	}

	for i := range accounts {
		accounts[i].Processed = false
	}

	return s.saveAll(accounts)
}

func (s *Store) saveAll(accounts []Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}

	return nil
}
