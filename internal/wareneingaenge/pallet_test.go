package wareneingaenge

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestPalletQuantity(t *testing.T) {
	tests := []struct {
		name      string
		notes     *string
		submitted decimal.Decimal
		expected  decimal.Decimal
	}{
		{
			name:      "no notes keeps submitted quantity",
			notes:     nil,
			submitted: decimal.NewFromInt(5),
			expected:  decimal.NewFromInt(5),
		},
		{
			name:      "notes without pallet marker keep submitted quantity",
			notes:     strPtr("Lieferung am Montag"),
			submitted: decimal.NewFromInt(5),
			expected:  decimal.NewFromInt(5),
		},
		{
			name:      "whole pallet count",
			notes:     strPtr("Eingabe: 2 Paletten"),
			submitted: decimal.NewFromInt(5),
			expected:  decimal.NewFromInt(160),
		},
		{
			name:      "fractional pallet count with comma separator",
			notes:     strPtr("Eingabe: 2,5 Paletten"),
			submitted: decimal.NewFromInt(1),
			expected:  decimal.NewFromInt(200),
		},
		{
			name:      "pallet marker embedded in longer note",
			notes:     strPtr("Anlieferung Tor 3, Eingabe: 1,5 Paletten, Rest folgt"),
			submitted: decimal.NewFromInt(10),
			expected:  decimal.NewFromInt(120),
		},
		{
			name:      "pallet word without parseable count keeps submitted quantity",
			notes:     strPtr("Paletten beschädigt angeliefert"),
			submitted: decimal.NewFromInt(42),
			expected:  decimal.NewFromInt(42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := palletQuantity(tt.notes, tt.submitted)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}
