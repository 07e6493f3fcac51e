package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShort(t *testing.T) {
	f := NewFormatter(DefaultPreferences())

	cases := map[int64]string{
		1_500_000: "2M",
		2_500:     "3k",
		999:       "999",
		1_000:     "1k",
		1_000_000: "1M",
		850_000:   "850k",
		0:         "0",
		-500:      "-500",
	}
	for in, want := range cases {
		assert.Equal(t, want, f.FormatShort(in), "FormatShort(%d)", in)
	}
}

func TestFormatShortConvertsBeforeAbbreviating(t *testing.T) {
	prefs, err := NewPreferences("en-US", "JPY")
	require.NoError(t, err)

	f := NewFormatter(prefs)
	// 2,000,000 IDR * 0.0095 = 19,000 JPY
	assert.Equal(t, "19k", f.FormatShort(2_000_000))
}

func TestFormatUsesSymbolAndGrouping(t *testing.T) {
	f := NewFormatter(DefaultPreferences())
	assert.Equal(t, "Rp 1,000,000", f.Format(1_000_000))
	assert.Equal(t, "Rp 0", f.Format(0))

	prefs, err := NewPreferences("en-US", "usd")
	require.NoError(t, err)
	usd := NewFormatter(prefs)
	assert.Equal(t, "$61", usd.Format(1_000_000))
}

func TestNewPreferencesRejectsUnknownCurrency(t *testing.T) {
	_, err := NewPreferences("en-US", "XYZ")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewPreferences("en-US", "CHF")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestNewPreferencesFallsBackOnBadLocale(t *testing.T) {
	prefs, err := NewPreferences("not a locale!!", "IDR")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, prefs.Locale)
}

func TestCurrenciesListsBaseFirst(t *testing.T) {
	list := Currencies()
	require.NotEmpty(t, list)
	assert.Equal(t, BaseCurrency, list[0].Code)
	assert.Len(t, list, 8)
}

func TestMoneyAdd(t *testing.T) {
	sum, err := IDR(100).Add(IDR(250))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount)

	_, err = IDR(1).Add(Must(1, "USD"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
