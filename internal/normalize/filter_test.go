package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseFilterDefaults(t *testing.T) {
	filter := NewNoiseFilter(DefaultNoiseKeywords())

	tests := []struct {
		concept string
		noise   bool
	}{
		{"SALDO ANTERIOR", true},
		{"SU SALDO ANTERIOR AL CIERRE", true},
		{"LEY INCL FINANC 17934", true},
		{"PAGOS RECIBIDOS", true},
		{"SALDO CONTADO", true},
		{"TOTAL DEV LEY 19210", true},
		{"PEDIDOSYA 123", false},
		{"UBER *TRIP", false},
		{"", false},
		// matching is case-sensitive
		{"saldo anterior", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.noise, filter.IsNoise(tt.concept), "concept %q", tt.concept)
	}
}

func TestNoiseFilterPerBankOverride(t *testing.T) {
	filter := NewNoiseFilter([]string{"PREVIOUS BALANCE"})

	assert.True(t, filter.IsNoise("PREVIOUS BALANCE CARRIED"))
	// the default markers no longer apply
	assert.False(t, filter.IsNoise("SALDO ANTERIOR"))
}

func TestNoiseFilterEmptySet(t *testing.T) {
	filter := NewNoiseFilter(nil)
	assert.False(t, filter.IsNoise("SALDO ANTERIOR"))
}
