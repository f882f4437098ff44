package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lmartinez/cardreport/internal/model"
)

// ErrEmptyHistory indicates no usable snapshot matched the requested bank
// and currency; there is nothing to chart or summarize.
var ErrEmptyHistory = errors.New("no snapshot history")

// SnapshotSource provides persisted snapshots to the report builder.
type SnapshotSource interface {
	// List returns matching snapshot keys ascending by month, truncated to
	// the last limit entries when limit > 0.
	List(bank, currency string, limit int) ([]string, error)
	// Load reads one snapshot by key.
	Load(key string) (model.Snapshot, error)
}

// MonthlyBreakdown is one month's per-category totals, derived and owned by
// the report caller.
type MonthlyBreakdown struct {
	Month  string // YYYY-MM
	Label  string // e.g. "May, 2025"
	Totals map[string]float64
}

// Builder assembles the multi-month category series behind trend charts and
// summary emails.
type Builder struct {
	source   SnapshotSource
	taxonomy Taxonomy
}

// NewBuilder creates a Builder over the given source and taxonomy.
func NewBuilder(source SnapshotSource, taxonomy Taxonomy) *Builder {
	return &Builder{source: source, taxonomy: taxonomy}
}

// Taxonomy returns the taxonomy the builder aggregates with.
func (b *Builder) Taxonomy() Taxonomy {
	return b.taxonomy
}

// Build aggregates the window most recent snapshots for (bank, currency),
// oldest first. Snapshots that fail to load are logged and skipped; the last
// element of the returned series is always the most recent month. Returns
// ErrEmptyHistory when no snapshot could be used.
func (b *Builder) Build(ctx context.Context, bank, currency string, window int) ([]MonthlyBreakdown, error) {
	keys, err := b.source.List(bank, currency, window)
	if err != nil {
		return nil, fmt.Errorf("building report for %s/%s: %w", bank, currency, err)
	}

	series := make([]MonthlyBreakdown, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snapshot, err := b.source.Load(key)
		if err != nil {
			slog.Warn("skipping unreadable snapshot", "key", key, "error", err)
			continue
		}

		series = append(series, MonthlyBreakdown{
			Month:  snapshot.Month,
			Label:  snapshot.MonthLabel,
			Totals: b.taxonomy.Aggregate(snapshot),
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("report for %s/%s: %w", bank, currency, ErrEmptyHistory)
	}
	return series, nil
}
