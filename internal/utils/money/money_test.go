package money_test

import (
	"testing"

	"github.com/finvolt/banking-core/internal/utils/money"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		want     string
	}{
		{"two digit currency", 12345, "INR", "123.45 INR"},
		{"unknown currency defaults to two digits", 100, "XXX", "1.00 XXX"},
		{"zero digit currency", 500, "JPY", "500 JPY"},
		{"three digit currency", 1500, "KWD", "1.500 KWD"},
		{"zero amount", 0, "USD", "0.00 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FormatMinorUnits(tt.amount, tt.currency))
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, "123.45", money.FromMinorUnits(12345, "USD").String())
	assert.Equal(t, "500", money.FromMinorUnits(500, "JPY").String())
}
