package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// InvoicePrefix is prepended to every generated invoice number
const InvoicePrefix = "ADG-"

// NewItemID generates an id for a catalog item created without one
func NewItemID() string {
	return uuid.NewString()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// SaleID derives a sale id from the checkout timestamp in unix millis
func SaleID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// GenerateInvoiceNo formats the invoice number for a checkout at t.
// Two checkouts within the same second share a number.
func GenerateInvoiceNo(t time.Time) string {
	return InvoicePrefix + t.Format("20060102150405")
}
