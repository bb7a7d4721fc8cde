package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 200, -75},
		{"flat", 10, 10, 0},
		{"zero baseline", 123, 0, 0},
		{"both zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentageChange(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestOrderTotals(t *testing.T) {
	lines := []decimal.Decimal{decimal.RequireFromString("19.99"), decimal.RequireFromString("5.01")}
	subtotal := ItemsTotal(lines...)
	assert.True(t, decimal.RequireFromString("25").Equal(subtotal))

	total := CalculateGrandTotal(subtotal, decimal.RequireFromString("2.50"), decimal.NewFromInt(5), decimal.NewFromInt(10))
	assert.True(t, decimal.RequireFromString("22.5").Equal(total))
	assert.True(t, ItemsTotal().IsZero())
}
