// Package remarks extracts structured tags from the free-text remarks field of
// a payment.
package remarks

import (
	"encoding/json"
	"strings"
)

// Tag is the structured fragment a payment-capture client may store in remarks.
type Tag struct {
	PaymentMonth string
	Month        string
}

// MonthName returns the academic month the tag points at. paymentMonth wins over month.
func (t Tag) MonthName() string {
	if t.PaymentMonth != "" {
		return t.PaymentMonth
	}
	return t.Month
}

// Parse reads a tag out of remarks. ok is false when remarks is empty, is not a
// JSON object, or carries neither a paymentMonth nor a month string.
func Parse(remarks string) (Tag, bool) {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" || remarks[0] != '{' {
		return Tag{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(remarks), &fields); err != nil {
		return Tag{}, false
	}

	tag := Tag{
		PaymentMonth: stringField(fields, "paymentMonth"),
		Month:        stringField(fields, "month"),
	}
	if tag.MonthName() == "" {
		return Tag{}, false
	}
	return tag, true
}

// MonthName is a shortcut for Parse followed by Tag.MonthName.
func MonthName(remarks string) (string, bool) {
	tag, ok := Parse(remarks)
	if !ok {
		return "", false
	}
	return tag.MonthName(), true
}

// non-string values are ignored
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
