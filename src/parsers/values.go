package parsers

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var currencySymbolReplacer = strings.NewReplacer(
	"R$", "",
	"US$", "",
	"$", "",
	"€", "",
	" ", "",
	" ", "",
)

var hundred = decimal.NewFromInt(100)

// ParseCurrency parses locale-variant money text into a decimal. The
// remaining punctuation decides the interpretation: a lone comma is a decimal
// comma, a lone dot is a decimal dot, and when both appear the dot is a
// thousands separator. Empty, dash-only, or unparsable input stays absent.
func ParseCurrency(raw string) decimal.NullDecimal {
	s := currencySymbolReplacer.Replace(strings.TrimSpace(raw))
	if s == "" || strings.Trim(s, "-") == "" {
		return decimal.NullDecimal{}
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParsePercentage parses currency-style text with a trailing percent sign and
// scales it to a fraction.
func ParsePercentage(raw string) decimal.NullDecimal {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	d := ParseCurrency(s)
	if !d.Valid {
		return d
	}
	return decimal.NullDecimal{Decimal: d.Decimal.Div(hundred), Valid: true}
}

// dateTimeLayouts are tried in order; the first successful parse wins.
// ISO-style layouts come first, then day-first layouts, then a generic
// fallback.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDateTime parses a raw timestamp into an absolute instant, or nil when
// no layout matches. Naive timestamps are interpreted as UTC and converted at
// the timezone boundaries downstream.
func ParseDateTime(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ParseInteger parses base-10 integer text; empty or unparsable input is
// absent, never zero.
func ParseInteger(raw string) *int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseText trims the cell; an empty string is normalized to absent.
func ParseText(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	return s, true
}
