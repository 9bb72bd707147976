package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewInvoiceNumber mints a human-facing invoice number of the form
// INV-<year>-<6 digits>. The random part is not unique across high volume;
// the order store enforces uniqueness and callers regenerate on collision.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.Year(), 100000+rand.IntN(900000))
}
