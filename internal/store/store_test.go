package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAccounts(t *testing.T, accounts []Account) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounts.json")
	data, err := json.Marshal(accounts)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	return New(path)
}

func testAccounts() []Account {
	return []Account{
		{AccountID: "acc-001", CompanyName: "TechFlow", Industry: "SaaS", IntentScore: 92},
		{AccountID: "acc-002", CompanyName: "FinSecure", Industry: "Financial Services", IntentScore: 88},
		{AccountID: "acc-003", CompanyName: "SlowCo", Industry: "Retail", IntentScore: 40},
		{AccountID: "acc-004", CompanyName: "MegaManu", Industry: "Manufacturing", IntentScore: 95, Processed: true},
	}
}

func TestLoadAll_MissingFileDegradesToEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))

	accounts := s.LoadAll()
	assert.Empty(t, accounts)
}

func TestLoad_MissingFileError(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestLoad_MalformedError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	s := New(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Empty(t, s.LoadAll())
}

func TestFilterHighIntent(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	high := s.FilterHighIntent(75)

	// acc-004 exceeds the threshold but is already processed.
	require.Len(t, high, 2)
	assert.Equal(t, "acc-001", high[0].AccountID)
	assert.Equal(t, "acc-002", high[1].AccountID)
}

func TestFilterHighIntent_ThresholdBoundary(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	high := s.FilterHighIntent(92)
	require.Len(t, high, 1)
	assert.Equal(t, "acc-001", high[0].AccountID)

	assert.Empty(t, s.FilterHighIntent(100))
}

func TestFilterHighIntent_PreservesStoreOrder(t *testing.T) {
	accounts := []Account{
		{AccountID: "z", IntentScore: 80},
		{AccountID: "a", IntentScore: 99},
		{AccountID: "m", IntentScore: 85},
	}
	s := writeAccounts(t, accounts)

	high := s.FilterHighIntent(75)
	require.Len(t, high, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{high[0].AccountID, high[1].AccountID, high[2].AccountID})
}

func TestMarkProcessed(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	ok := s.MarkProcessed("acc-001")
	require.True(t, ok)

	acct, found := s.GetByID("acc-001")
	require.True(t, found)
	assert.True(t, acct.Processed)

	// Idempotent: second call succeeds and leaves processed=true.
	ok = s.MarkProcessed("acc-001")
	require.True(t, ok)
	acct, _ = s.GetByID("acc-001")
	assert.True(t, acct.Processed)
}

func TestMarkProcessed_UnknownID(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	assert.False(t, s.MarkProcessed("acc-999"))
}

func TestMarkProcessed_DoesNotTouchOtherRecords(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	require.True(t, s.MarkProcessed("acc-002"))

	acct, _ := s.GetByID("acc-001")
	assert.False(t, acct.Processed)
	acct, _ = s.GetByID("acc-003")
	assert.False(t, acct.Processed)
}

func TestResetProcessed(t *testing.T) {
	s := writeAccounts(t, testAccounts())
	require.True(t, s.MarkProcessed("acc-001"))

	require.NoError(t, s.ResetProcessed())

	for _, a := range s.LoadAll() {
		assert.False(t, a.Processed, "account %s should be unprocessed", a.AccountID)
	}
}

func TestGetByID_Missing(t *testing.T) {
	s := writeAccounts(t, testAccounts())

	_, found := s.GetByID("nope")
	assert.False(t, found)
}
