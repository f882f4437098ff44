package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{
			name: "thousands dot with comma decimal",
			raw:  "1.234,56",
			want: 1234.56,
		},
		{
			name: "comma decimal without thousands",
			raw:  "62,52",
			want: 62.52,
		},
		{
			name: "plain decimal point",
			raw:  "1234.56",
			want: 1234.56,
		},
		{
			name: "small plain decimal point is not a thousands separator",
			raw:  "62.52",
			want: 62.52,
		},
		{
			name: "trailing minus",
			raw:  "1.234,56-",
			want: -1234.56,
		},
		{
			name: "leading minus",
			raw:  "-62,52",
			want: -62.52,
		},
		{
			name: "trailing minus on plain format",
			raw:  "500.00-",
			want: -500,
		},
		{
			name: "integer",
			raw:  "1500",
			want: 1500,
		},
		{
			name: "surrounding whitespace",
			raw:  " 62,52 ",
			want: 62.52,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "not a number",
			raw:     "N/A",
			wantErr: true,
		},
		{
			name:    "two commas",
			raw:     "1,234,56",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBadAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmountSignPreserving(t *testing.T) {
	for _, raw := range []string{"1.234,56", "62,52", "1234.56", "987"} {
		positive, err := ParseAmount(raw)
		require.NoError(t, err)

		leading, err := ParseAmount("-" + raw)
		require.NoError(t, err)
		assert.Equal(t, -positive, leading, "leading minus on %q", raw)

		trailing, err := ParseAmount(raw + "-")
		require.NoError(t, err)
		assert.Equal(t, -positive, trailing, "trailing minus on %q", raw)
	}
}
