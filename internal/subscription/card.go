package subscription

import (
	"fmt"
	"strings"
	"unicode"
)

// Card holds the debit-card form fields of the simulated checkout.
type Card struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	DNI    string `json:"dni"`
}

// Validate applies the minimal form rules before the simulated charge.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &CardError{Field: "name", Issue: "is required"}
	}
	if len(digits(c.Number)) < 16 {
		return &CardError{Field: "number", Issue: "must have at least 16 digits"}
	}
	if len(strings.TrimSpace(c.Expiry)) < 5 {
		return &CardError{Field: "expiry", Issue: "must be MM/AA"}
	}
	if len(strings.TrimSpace(c.CVV)) < 3 {
		return &CardError{Field: "cvv", Issue: "must have at least 3 digits"}
	}
	if len(strings.TrimSpace(c.DNI)) < 7 {
		return &CardError{Field: "dni", Issue: "must have at least 7 characters"}
	}
	return nil
}

// CardError reports an invalid card form field.
type CardError struct {
	Field string
	Issue string
}

func (e *CardError) Error() string {
	return fmt.Sprintf("card %s %s", e.Field, e.Issue)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
