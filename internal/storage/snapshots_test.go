package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmartinez/cardreport/internal/model"
)

func createTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return store
}

func testTransactions() []model.Transaction {
	return []model.Transaction{
		{Date: "05-04-2025", Concept: "PEDIDOSYA RESTAURANTE", Amount: 1250.00},
		{Date: "07-04-2025", Concept: "UBER *TRIP", Amount: 325.50},
		{Date: "10-04-2025", Concept: "PAGO RECIBIDO", Amount: -1500.00},
	}
}

func TestNewSnapshotStoreValidation(t *testing.T) {
	_, err := NewSnapshotStore("  ")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "SANTANDER_2025-05_UY$", Key("santander", "2025-05", "uy$"))
}

func TestSaveAndLoad(t *testing.T) {
	store := createTestStore(t)

	path, err := store.Save("santander", "2025-05", "uy$", testTransactions())
	require.NoError(t, err)
	assert.Equal(t, "SANTANDER_2025-05_UY$.json", filepath.Base(path))

	snapshot, err := store.Load("SANTANDER_2025-05_UY$")
	require.NoError(t, err)

	assert.Equal(t, "SANTANDER", snapshot.Bank)
	assert.Equal(t, "UY$", snapshot.Currency)
	assert.Equal(t, "2025-05", snapshot.Month)
	assert.Equal(t, "May, 2025", snapshot.MonthLabel)
	assert.Equal(t, testTransactions(), snapshot.Transactions)
	assert.Equal(t, snapshot.Sum(), snapshot.TotalAmount)
	assert.Equal(t, 1250.00+325.50-1500.00, snapshot.TotalAmount)
}

func TestLoadAcceptsKeyWithExtension(t *testing.T) {
	store := createTestStore(t)
	_, err := store.Save("itau", "2025-01", "usd", nil)
	require.NoError(t, err)

	snapshot, err := store.Load("ITAU_2025-01_USD.json")
	require.NoError(t, err)
	assert.Equal(t, "ITAU", snapshot.Bank)
}

func TestSaveRejectsBadMonth(t *testing.T) {
	store := createTestStore(t)
	_, err := store.Save("santander", "05-2025", "uy$", nil)
	assert.Error(t, err)
}

func TestSaveOverwrites(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Save("santander", "2025-05", "uy$", testTransactions())
	require.NoError(t, err)
	_, err = store.Save("santander", "2025-05", "uy$", testTransactions()[:1])
	require.NoError(t, err)

	snapshot, err := store.Load("SANTANDER_2025-05_UY$")
	require.NoError(t, err)
	assert.Len(t, snapshot.Transactions, 1)
}

func TestSaveIsDeterministic(t *testing.T) {
	store := createTestStore(t)

	path, err := store.Save("santander", "2025-05", "uy$", testTransactions())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.Save("santander", "2025-05", "uy$", testTransactions())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestList(t *testing.T) {
	store := createTestStore(t)

	for _, month := range []string{"2025-03", "2025-01", "2025-02"} {
		_, err := store.Save("santander", month, "uy$", nil)
		require.NoError(t, err)
	}
	_, err := store.Save("itau", "2025-04", "uy$", nil)
	require.NoError(t, err)
	_, err = store.Save("santander", "2025-04", "usd", nil)
	require.NoError(t, err)

	keys, err := store.List("santander", "uy$", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SANTANDER_2025-01_UY$",
		"SANTANDER_2025-02_UY$",
		"SANTANDER_2025-03_UY$",
	}, keys)
}

func TestListIsCaseInsensitive(t *testing.T) {
	store := createTestStore(t)
	_, err := store.Save("Santander", "2025-05", "Uy$", nil)
	require.NoError(t, err)

	keys, err := store.List("santander", "uy$", 0)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestListKeepsMostRecentWithLimit(t *testing.T) {
	store := createTestStore(t)
	for _, month := range []string{"2025-01", "2025-02", "2025-03", "2025-04"} {
		_, err := store.Save("santander", month, "uy$", nil)
		require.NoError(t, err)
	}

	keys, err := store.List("santander", "uy$", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SANTANDER_2025-03_UY$",
		"SANTANDER_2025-04_UY$",
	}, keys)
}

func TestListMissingDirectory(t *testing.T) {
	store := createTestStore(t)
	keys, err := store.List("santander", "uy$", 0)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLoadNotFound(t *testing.T) {
	store := createTestStore(t)
	_, err := store.Load("SANTANDER_2025-05_UY$")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	store := createTestStore(t)
	require.NoError(t, os.MkdirAll(store.dir, 0750))

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{"},
		{name: "missing fields", content: "{}"},
		{name: "total mismatch", content: `{
			"bank": "SANTANDER", "currency": "UY$", "month": "2025-05",
			"month_label": "May, 2025", "transactions_total_amount": 999,
			"transactions": [{"date": "01-05-2025", "concept": "UBER", "amount": 100}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(store.dir, "SANTANDER_2025-05_UY$.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0640))

			_, err := store.Load("SANTANDER_2025-05_UY$")
			assert.ErrorIs(t, err, ErrSnapshotCorrupt)
		})
	}
}
