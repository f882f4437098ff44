package model

// Snapshot is one persisted month of transactions for a bank and currency.
// It is written once by a normalizer run and treated as immutable afterwards;
// re-running the normalizer for the same key overwrites the whole snapshot.
type Snapshot struct {
	Bank         string        `json:"bank"`
	Currency     string        `json:"currency"`
	Month        string        `json:"month"`       // YYYY-MM
	MonthLabel   string        `json:"month_label"` // e.g. "May, 2025", fixed at save time
	TotalAmount  float64       `json:"transactions_total_amount"`
	Transactions []Transaction `json:"transactions"`
}

// Sum recomputes the transaction total in stored order. A well-formed
// snapshot satisfies Sum() == TotalAmount exactly, since TotalAmount was
// accumulated in the same order at save time.
func (s *Snapshot) Sum() float64 {
	var total float64
	for _, t := range s.Transactions {
		total += t.Amount
	}
	return total
}
