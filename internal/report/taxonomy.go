// Package report aggregates snapshot history into per-category monthly
// series and renders the latest-month summary.
package report

import (
	"strings"

	"github.com/lmartinez/cardreport/internal/model"
)

// Category pairs a display name with the substring that claims a
// transaction for it. Here the two coincide, but banks occasionally change
// merchant strings, so they stay separate fields.
type Category struct {
	Name    string
	Keyword string
}

// Taxonomy is a fixed, ordered list of spend categories plus a catch-all.
// Classification is first-match-wins: earlier categories take priority over
// later ones and over the catch-all.
type Taxonomy struct {
	categories []Category
	catchAll   string
}

// NewTaxonomy builds a taxonomy from an ordered category list and the
// catch-all name for unmatched transactions.
func NewTaxonomy(categories []Category, catchAll string) Taxonomy {
	return Taxonomy{categories: categories, catchAll: catchAll}
}

// DefaultTaxonomy returns the built-in spend categories, in priority order.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy([]Category{
		{Name: "PEDIDOSYA", Keyword: "PEDIDOSYA"},
		{Name: "UBER", Keyword: "UBER"},
		{Name: "DEVOTO", Keyword: "DEVOTO"},
		{Name: "LAVOMAT", Keyword: "LAVOMAT"},
		{Name: "MERPAGO", Keyword: "MERPAGO"},
	}, "OTHER")
}

// Names returns every category name in priority order, catch-all last.
func (tx Taxonomy) Names() []string {
	names := make([]string, 0, len(tx.categories)+1)
	for _, c := range tx.categories {
		names = append(names, c.Name)
	}
	return append(names, tx.catchAll)
}

// Classify assigns a concept to the first category whose keyword it
// contains, falling back to the catch-all.
func (tx Taxonomy) Classify(concept string) string {
	for _, c := range tx.categories {
		if strings.Contains(concept, c.Keyword) {
			return c.Name
		}
	}
	return tx.catchAll
}

// Aggregate sums snapshot amounts per category. The result always carries
// exactly one entry per taxonomy category, zero-valued when nothing matched,
// so downstream consumers see a stable key set across months.
func (tx Taxonomy) Aggregate(snapshot model.Snapshot) map[string]float64 {
	sums := make(map[string]float64, len(tx.categories)+1)
	for _, name := range tx.Names() {
		sums[name] = 0
	}
	for _, t := range snapshot.Transactions {
		sums[tx.Classify(t.Concept)] += t.Amount
	}
	return sums
}
