package normalize

import "strings"

// DefaultNoiseKeywords marks the statement lines that are not real
// transactions: balance carry-forwards, statutory disclosures, payment
// confirmations. Wording varies by institution, so callers may pass their
// own set per bank.
func DefaultNoiseKeywords() []string {
	return []string{
		"SALDO ANTERIOR",
		"LEY INCL FINANC",
		"PAGOS",
		"SALDO CONTADO",
		"TOTAL DEV LEY 19210",
	}
}

// NoiseFilter suppresses statement records whose concept contains any of a
// configured set of keywords.
type NoiseFilter struct {
	keywords []string
}

// NewNoiseFilter creates a filter over the given keyword set.
func NewNoiseFilter(keywords []string) NoiseFilter {
	return NoiseFilter{keywords: keywords}
}

// IsNoise reports whether the concept matches any configured keyword.
// Matching is a case-sensitive substring test, statement concepts arrive
// upper-cased from the bank.
func (f NoiseFilter) IsNoise(concept string) bool {
	for _, kw := range f.keywords {
		if strings.Contains(concept, kw) {
			return true
		}
	}
	return false
}
