package money

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when preferences carry no parseable locale.
const DefaultLocale = "en-US"

// Preferences are the viewer's display settings.
type Preferences struct {
	Locale   string
	Currency Currency
}

// DefaultPreferences formats in rupiah with English grouping.
func DefaultPreferences() Preferences {
	return Preferences{Locale: DefaultLocale, Currency: currencies[BaseCurrency]}
}

// NewPreferences resolves a locale tag and currency code.
func NewPreferences(locale, currencyCode string) (Preferences, error) {
	cur, err := LookupCurrency(currencyCode)
	if err != nil {
		return Preferences{}, err
	}
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	if _, err := language.Parse(locale); err != nil {
		locale = DefaultLocale
	}
	return Preferences{Locale: locale, Currency: cur}, nil
}

// Formatter renders base-currency prices for a viewer.
type Formatter struct {
	Prefs Preferences
}

func NewFormatter(prefs Preferences) Formatter {
	if prefs.Currency.Code == "" {
		prefs.Currency = currencies[BaseCurrency]
	}
	if prefs.Locale == "" {
		prefs.Locale = DefaultLocale
	}
	return Formatter{Prefs: prefs}
}

// Convert applies the currency rate and rounds half away from zero.
func (f Formatter) Convert(priceBase int64) int64 {
	return int64(math.Round(float64(priceBase) * f.rate()))
}

// Format renders the converted price with the currency symbol and locale grouping, no fraction digits.
func (f Formatter) Format(priceBase int64) string {
	tag, err := language.Parse(f.Prefs.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	amount := message.NewPrinter(tag).Sprintf("%d", f.Convert(priceBase))
	symbol := f.Prefs.Currency.Symbol
	if symbol == "" {
		symbol = f.Prefs.Currency.Code
	}
	if endsWithLetter(symbol) {
		return symbol + " " + amount
	}
	return symbol + amount
}

// FormatShort abbreviates the converted price for calendar cells: 1500000 -> "2M", 2500 -> "3k".
func (f Formatter) FormatShort(priceBase int64) string {
	v := float64(priceBase) * f.rate()
	switch {
	case v >= 1_000_000:
		return strconv.FormatInt(int64(math.Round(v/1_000_000)), 10) + "M"
	case v >= 1_000:
		return strconv.FormatInt(int64(math.Round(v/1_000)), 10) + "k"
	default:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
}

func (f Formatter) rate() float64 {
	if f.Prefs.Currency.Rate == 0 {
		return 1
	}
	return f.Prefs.Currency.Rate
}

func endsWithLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}
