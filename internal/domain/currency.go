package domain

import (
	"regexp"
	"strings"
)

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	RON Currency = "RON"
)

// SupportedCurrencies is the fixed set accepted by the conversion endpoints, in display order.
var SupportedCurrencies = []Currency{USD, EUR, GBP, JPY, CAD, RON}

var codeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCode trims and upper-cases a currency code as received from a client.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func ValidCode(code string) bool {
	return codeRe.MatchString(code)
}

func IsSupported(code string) bool {
	if !ValidCode(code) {
		return false
	}
	for _, c := range SupportedCurrencies {
		if string(c) == code {
			return true
		}
	}
	return false
}

// SupportedCodes returns a copy of SupportedCurrencies as plain strings.
func SupportedCodes() []string {
	out := make([]string, len(SupportedCurrencies))
	for i, c := range SupportedCurrencies {
		out[i] = string(c)
	}
	return out
}
