package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lmartinez/cardreport/internal/model"
)

// ErrMalformedRecord indicates a raw record missing its date, concept or
// amount. Structurally broken records abort the whole run; a partial
// snapshot is never produced.
var ErrMalformedRecord = errors.New("malformed record")

// Normalizer converts raw statement records into canonical transactions.
type Normalizer struct {
	filter NoiseFilter
}

// NewNormalizer creates a Normalizer using the given noise filter.
func NewNormalizer(filter NoiseFilter) *Normalizer {
	return &Normalizer{filter: filter}
}

// Normalize converts records into transactions, preserving source order.
// Noise records are dropped; everything else either normalizes cleanly or
// fails the run. The returned total is accumulated in encounter order so
// floating-point summation stays reproducible.
func (n *Normalizer) Normalize(records []model.RawRecord) ([]model.Transaction, float64, error) {
	transactions := make([]model.Transaction, 0, len(records))
	var total float64

	for i, record := range records {
		date, concept, rawAmount, err := splitRecord(record)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		if date == "" || concept == "" {
			continue // skipped blank line
		}
		if n.filter.IsNoise(concept) {
			continue
		}

		amount, err := ParseAmount(rawAmount)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d (%s): %w", i, concept, err)
		}

		transactions = append(transactions, model.Transaction{
			Date:    strings.ReplaceAll(date, "/", "-"),
			Concept: concept,
			Amount:  amount,
		})
		total += amount
	}

	return transactions, total, nil
}

// splitRecord extracts the date, concept and amount strings from either raw
// record shape. Blank lines yield empty fields and no error; anything else
// missing a field is malformed.
func splitRecord(record model.RawRecord) (date, concept, amount string, err error) {
	switch record.Kind {
	case model.RawRecordLine:
		if strings.TrimSpace(record.Line) == "" {
			return "", "", "", nil
		}
		// [date, card, concept tokens..., amount]
		fields := strings.Fields(record.Line)
		if len(fields) < 4 {
			return "", "", "", fmt.Errorf("%w: line %q", ErrMalformedRecord, record.Line)
		}
		last := len(fields) - 1
		return fields[0], strings.Join(fields[2:last], " "), fields[last], nil
	case model.RawRecordStructured:
		if record.Date == "" || record.Concept == "" || record.Amount == "" {
			return "", "", "", fmt.Errorf("%w: missing date, concept or amount", ErrMalformedRecord)
		}
		return record.Date, record.Concept, record.Amount, nil
	default:
		return "", "", "", fmt.Errorf("%w: unknown record kind %q", ErrMalformedRecord, record.Kind)
	}
}
