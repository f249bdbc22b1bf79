package client

import (
	"strings"
)

// NormalizeMSISDN strips formatting characters (spaces, dashes, a leading
// plus) from a phone number and checks the result is plausible: digits only,
// 9 to 15 of them. The provider expects MSISDNs without the "+" prefix.
func NormalizeMSISDN(msisdn string) (string, error) {
	var b strings.Builder
	for _, r := range msisdn {
		switch r {
		case ' ', '-', '+':
			continue
		}
		b.WriteRune(r)
	}
	clean := b.String()

	if clean == "" {
		return "", &ValidationError{Field: "phone number", Message: "empty"}
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return "", &ValidationError{Field: "phone number", Message: "must contain only digits"}
		}
	}
	if len(clean) < 9 || len(clean) > 15 {
		return "", &ValidationError{Field: "phone number", Message: "must be 9-15 digits"}
	}

	return clean, nil
}
