// Package storage persists monthly transaction snapshots as one JSON file
// per (bank, month, currency) key.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lmartinez/cardreport/internal/model"
)

// Storage errors.
var (
	// ErrSnapshotNotFound indicates no snapshot exists for the requested key.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSnapshotCorrupt indicates the persisted content is not a
	// well-formed snapshot.
	ErrSnapshotCorrupt = errors.New("snapshot corrupted")
)

const snapshotExt = ".json"

// SnapshotStore reads and writes snapshots under a single data directory.
// The file name doubles as the lookup key, so List can order snapshots
// chronologically by plain lexical sort.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dir. The directory is created
// lazily on first Save.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("snapshot store: dir cannot be empty")
	}
	return &SnapshotStore{dir: dir}, nil
}

// Key builds the canonical snapshot key: {BANK}_{YYYY-MM}_{CURRENCY}.
func Key(bank, month, currency string) string {
	return fmt.Sprintf("%s_%s_%s",
		strings.ToUpper(bank), month, strings.ToUpper(currency))
}

// Save writes the full snapshot for (bank, month, currency), overwriting any
// previous one for the same key. The total amount and the human-readable
// month label are fixed here, at save time. Returns the file path written.
func (s *SnapshotStore) Save(bank, month, currency string, transactions []model.Transaction) (string, error) {
	label, err := monthLabel(month)
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}

	snapshot := model.Snapshot{
		Bank:         strings.ToUpper(bank),
		Currency:     strings.ToUpper(currency),
		Month:        month,
		MonthLabel:   label,
		Transactions: transactions,
	}
	snapshot.TotalAmount = snapshot.Sum()

	data, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("save snapshot %s: %w", Key(bank, month, currency), err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("save snapshot: creating data directory: %w", err)
	}

	path := filepath.Join(s.dir, Key(bank, month, currency)+snapshotExt)
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("save snapshot %s: %w", Key(bank, month, currency), err)
	}
	return path, nil
}

// List returns the keys of persisted snapshots matching bank and currency,
// ascending. Matching is a case-insensitive substring test against the key;
// the lexical sort orders keys chronologically because the month is the
// second, zero-padded token. When limit > 0 only the last limit keys (the
// most recent months) are returned.
func (s *SnapshotStore) List(bank, currency string, limit int) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	bank = strings.ToUpper(bank)
	currency = strings.ToUpper(currency)

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		key := strings.TrimSuffix(name, snapshotExt)
		upper := strings.ToUpper(key)
		if strings.Contains(upper, bank) && strings.Contains(upper, currency) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}
	return keys, nil
}

// Load reads the snapshot stored under key. The key may be passed with or
// without its .json extension.
func (s *SnapshotStore) Load(key string) (model.Snapshot, error) {
	key = strings.TrimSuffix(key, snapshotExt)

	data, err := os.ReadFile(filepath.Join(s.dir, key+snapshotExt))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Snapshot{}, fmt.Errorf("load %s: %w", key, ErrSnapshotNotFound)
		}
		return model.Snapshot{}, fmt.Errorf("load %s: %w", key, err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("load %s: %w: %v", key, ErrSnapshotCorrupt, err)
	}
	if snapshot.Month == "" || snapshot.Bank == "" {
		return model.Snapshot{}, fmt.Errorf("load %s: %w: missing month or bank", key, ErrSnapshotCorrupt)
	}
	if snapshot.Sum() != snapshot.TotalAmount {
		return model.Snapshot{}, fmt.Errorf("load %s: %w: stored total %v does not match transactions",
			key, ErrSnapshotCorrupt, snapshot.TotalAmount)
	}
	return snapshot, nil
}

// monthLabel renders a YYYY-MM month as e.g. "May, 2025".
func monthLabel(month string) (string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	return t.Format("January, 2006"), nil
}

// writeFileAtomic writes data via a temp file and rename so a crashed run
// never leaves a partial snapshot behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
