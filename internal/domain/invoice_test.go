package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^INV-2026-[1-9]\d{5}$`)

	for i := 0; i < 100; i++ {
		num := NewInvoiceNumber(now)
		assert.Regexp(t, pattern, num, "invoice number %q", num)
	}
}

func TestNewInvoiceNumberUsesGivenYear(t *testing.T) {
	num := NewInvoiceNumber(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "INV-2031-", num[:len("INV-2031-")])
}
