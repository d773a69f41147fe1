package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-0001", FormatInvoiceNumber(2026, 1))
	assert.Equal(t, "INV-2026-0042", FormatInvoiceNumber(2026, 42))

	// После 9999 номер растет без усечения
	assert.Equal(t, "INV-2026-10000", FormatInvoiceNumber(2026, 10000))
}

func TestParseInvoiceSequence(t *testing.T) {
	tests := []struct {
		name   string
		number string
		year   int
		want   int
	}{
		{"valid number", "INV-2026-0042", 2026, 42},
		{"first number", "INV-2026-0001", 2026, 1},
		{"wide sequence", "INV-2026-10000", 2026, 10000},
		{"foreign year", "INV-2025-0042", 2026, 0},
		{"foreign prefix", "ACC-2026-0042", 2026, 0},
		{"non-numeric suffix", "INV-2026-00X2", 2026, 0},
		{"empty", "", 2026, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInvoiceSequence(tt.number, tt.year))
		})
	}
}

func TestInvoiceNumberPrefix(t *testing.T) {
	assert.Equal(t, "INV-2026-", InvoiceNumberPrefix(2026))
}
