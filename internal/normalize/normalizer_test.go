package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmartinez/cardreport/internal/model"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(NewNoiseFilter(DefaultNoiseKeywords()))
}

func TestNormalizeLineRecords(t *testing.T) {
	records := []model.RawRecord{
		model.NewLineRecord("05/04/2025 1234 PEDIDOSYA RESTAURANTE 1.250,00"),
		model.NewLineRecord(""),
		model.NewLineRecord("07/04/2025 1234 UBER *TRIP 325,50"),
		model.NewLineRecord("10/04/2025 1234 PAGO TARJETA 1.575,50-"),
	}

	transactions, total, err := newTestNormalizer().Normalize(records)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, model.Transaction{
		Date:    "05-04-2025",
		Concept: "PEDIDOSYA RESTAURANTE",
		Amount:  1250.00,
	}, transactions[0])
	assert.Equal(t, "UBER *TRIP", transactions[1].Concept)
	assert.Equal(t, -1575.50, transactions[2].Amount)
	assert.Equal(t, 1250.00+325.50-1575.50, total)
}

func TestNormalizeStructuredRecords(t *testing.T) {
	records := []model.RawRecord{
		model.NewStructuredRecord("03/05/2025", "DEVOTO SUPERMERCADO", "2.480,90"),
		model.NewStructuredRecord("04/05/2025", "SEGURO SALDO DEUDOR", "62,52"),
	}

	transactions, total, err := newTestNormalizer().Normalize(records)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "03-05-2025", transactions[0].Date)
	assert.Equal(t, 62.52, transactions[1].Amount)
	assert.Equal(t, 2480.90+62.52, total)
}

func TestNormalizeSkipsNoise(t *testing.T) {
	records := []model.RawRecord{
		model.NewStructuredRecord("01/05/2025", "SALDO ANTERIOR", "10.000,00"),
		model.NewStructuredRecord("02/05/2025", "UBER *TRIP", "100,00"),
		model.NewLineRecord("03/05/2025 1234 TOTAL DEV LEY 19210 55,00"),
	}

	transactions, total, err := newTestNormalizer().Normalize(records)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "UBER *TRIP", transactions[0].Concept)
	assert.Equal(t, 100.00, total)
}

func TestNormalizeMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record model.RawRecord
	}{
		{
			name:   "line with too few fields",
			record: model.NewLineRecord("05/04/2025 1234 100,00"),
		},
		{
			name:   "structured without amount",
			record: model.NewStructuredRecord("05/04/2025", "UBER *TRIP", ""),
		},
		{
			name:   "structured without date",
			record: model.NewStructuredRecord("", "UBER *TRIP", "100,00"),
		},
		{
			name:   "structured without concept",
			record: model.NewStructuredRecord("05/04/2025", "", "100,00"),
		},
		{
			name:   "unknown kind",
			record: model.RawRecord{Kind: "CSV"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newTestNormalizer().Normalize([]model.RawRecord{tt.record})
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestNormalizeBadAmountAbortsRun(t *testing.T) {
	records := []model.RawRecord{
		model.NewStructuredRecord("01/05/2025", "UBER *TRIP", "100,00"),
		model.NewStructuredRecord("02/05/2025", "DEVOTO", "no-amount"),
	}

	transactions, total, err := newTestNormalizer().Normalize(records)
	assert.ErrorIs(t, err, ErrBadAmount)
	assert.Nil(t, transactions)
	assert.Zero(t, total)
}

func TestNormalizeEmptyInput(t *testing.T) {
	transactions, total, err := newTestNormalizer().Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	assert.Zero(t, total)
}
