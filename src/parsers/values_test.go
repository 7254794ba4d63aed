package parsers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"decimal comma", "21,90", "21.90"},
		{"decimal dot", "21.9", "21.9"},
		{"thousands dot with decimal comma", "1.250,50", "1250.50"},
		{"currency symbol and spaces", "R$ 1.234,56", "1234.56"},
		{"dollar symbol", "$99.90", "99.90"},
		{"plain integer", "150", "150"},
		{"negative decimal comma", "-21,90", "-21.90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCurrency(tt.in)
			require.True(t, got.Valid, "expected a parsed value")
			require.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.Decimal, tt.want)
		})
	}
}

func TestParseCurrencyAbsent(t *testing.T) {
	for _, in := range []string{"", "  ", "-", "--", "n/a", "abc", "R$"} {
		got := ParseCurrency(in)
		require.False(t, got.Valid, "input %q must be absent, not zero", in)
	}
}

func TestParsePercentage(t *testing.T) {
	got := ParsePercentage("5%")
	require.True(t, got.Valid)
	require.True(t, got.Decimal.Equal(decimal.RequireFromString("0.05")))

	got = ParsePercentage("12,5%")
	require.True(t, got.Valid)
	require.True(t, got.Decimal.Equal(decimal.RequireFromString("0.125")))

	require.False(t, ParsePercentage("").Valid)
	require.False(t, ParsePercentage("%").Valid)
}

func TestParseDateTimeFormatsAgree(t *testing.T) {
	iso := ParseDateTime("2024-01-15 10:30:00")
	dayFirst := ParseDateTime("15/1/2024 10:30:00")
	require.NotNil(t, iso)
	require.NotNil(t, dayFirst)
	require.True(t, iso.Equal(*dayFirst), "ISO and day-first forms of the same instant must agree")

	isoDate := ParseDateTime("2024-01-15")
	dayFirstDate := ParseDateTime("15/01/2024")
	require.NotNil(t, isoDate)
	require.NotNil(t, dayFirstDate)
	require.True(t, isoDate.Equal(*dayFirstDate))
}

func TestParseDateTime(t *testing.T) {
	got := ParseDateTime("2024-03-05 08:15:30")
	require.NotNil(t, got)
	require.Equal(t, time.Date(2024, 3, 5, 8, 15, 30, 0, time.UTC), *got)

	require.Nil(t, ParseDateTime(""))
	require.Nil(t, ParseDateTime("not a date"))
	require.Nil(t, ParseDateTime("31/31/2024"))
}

func TestParseInteger(t *testing.T) {
	got := ParseInteger("42")
	require.NotNil(t, got)
	require.Equal(t, int64(42), *got)

	require.Nil(t, ParseInteger(""))
	require.Nil(t, ParseInteger("4.2"))
	require.Nil(t, ParseInteger("abc"))
}

func TestParseText(t *testing.T) {
	s, ok := ParseText("  hello ")
	require.True(t, ok)
	require.Equal(t, "hello", s)

	_, ok = ParseText("   ")
	require.False(t, ok, "empty text is absent, not empty string")
}
