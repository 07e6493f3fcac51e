package money

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/currency"
)

// Currency describes a display currency. Rate converts one base-currency unit into this currency.
type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

var currencies = map[string]Currency{
	"IDR": {Code: "IDR", Name: "Indonesian rupiah", Symbol: "Rp", Rate: 1},
	"USD": {Code: "USD", Name: "US dollar", Symbol: "$", Rate: 0.000061},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Rate: 0.000057},
	"SGD": {Code: "SGD", Name: "Singapore dollar", Symbol: "S$", Rate: 0.000082},
	"MYR": {Code: "MYR", Name: "Malaysian ringgit", Symbol: "RM", Rate: 0.00029},
	"AUD": {Code: "AUD", Name: "Australian dollar", Symbol: "A$", Rate: 0.000094},
	"JPY": {Code: "JPY", Name: "Japanese yen", Symbol: "¥", Rate: 0.0095},
	"GBP": {Code: "GBP", Name: "Pound sterling", Symbol: "£", Rate: 0.000049},
}

// LookupCurrency resolves an ISO 4217 code against the static table.
func LookupCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return currencies[BaseCurrency], nil
	}
	if _, err := currency.ParseISO(code); err != nil {
		return Currency{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}
	cur, ok := currencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %s is not supported", ErrInvalidCurrency, code)
	}
	return cur, nil
}

// Currencies lists the supported currencies ordered by code, base currency first.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencies))
	for _, cur := range currencies {
		out = append(out, cur)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code == BaseCurrency {
			return true
		}
		if out[j].Code == BaseCurrency {
			return false
		}
		return out[i].Code < out[j].Code
	})
	return out
}
