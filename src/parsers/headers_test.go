package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

func TestNormalizeHeader(t *testing.T) {
	require.Equal(t, "order id", NormalizeHeader("\uFEFFOrder ID "))
	require.Equal(t, "comissão líquida", NormalizeHeader("  Comissão Líquida"))
}

func TestDetectReportType(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    models.ReportType
		wantErr bool
	}{
		{"english transactions", []string{"Order ID", "Item ID", "Purchase Time"}, models.ReportTransactions, false},
		{"portuguese transactions", []string{"ID do Pedido", "Comissão Líquida"}, models.ReportTransactions, false},
		{"commission header alone", []string{"Net Commission", "Item Name"}, models.ReportTransactions, false},
		{"clicks", []string{"Click Time", "Region", "Referrer"}, models.ReportClicks, false},
		{"bom and casing", []string{"\uFEFFORDER ID"}, models.ReportTransactions, false},
		{"unrecognized", []string{"foo", "bar", "baz"}, "", true},
		{"empty", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectReportType(tt.headers)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownReportType)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDetectReportTypeOrderWinsOverClick(t *testing.T) {
	// A transaction export also carries a click-time column; order tokens
	// must take precedence.
	got, err := DetectReportType([]string{"Click Time", "Order ID"})
	require.NoError(t, err)
	require.Equal(t, models.ReportTransactions, got)
}

func TestMapHeaderManyToOne(t *testing.T) {
	for _, raw := range []string{"Order ID", "order_id", "ID do Pedido", "\uFEFFOrder ID"} {
		f, ok := MapHeader(models.ReportTransactions, raw)
		require.True(t, ok, "header %q should map", raw)
		require.Equal(t, models.FieldOrderID, f)
	}

	for _, raw := range []string{"Comissão Líquida", "comissao liquida", "Net Commission"} {
		f, ok := MapHeader(models.ReportTransactions, raw)
		require.True(t, ok, "header %q should map", raw)
		require.Equal(t, models.FieldNetCommission, f)
	}
}

func TestMapHeaderUnknownPassesThrough(t *testing.T) {
	_, ok := MapHeader(models.ReportTransactions, "some unrelated column")
	require.False(t, ok)

	// Transaction-only headers must not leak into the click mapping.
	_, ok = MapHeader(models.ReportClicks, "Order ID")
	require.False(t, ok)
}

func TestAliasTargetsHaveFieldSpecs(t *testing.T) {
	// Every alias must resolve to a field the family's spec table knows,
	// otherwise the builder would silently drop its values.
	for raw, field := range transactionAliases {
		_, ok := models.TransactionFieldSpecs[field]
		require.True(t, ok, "transaction alias %q targets unspecified field %q", raw, field)
	}
	for raw, field := range clickAliases {
		_, ok := models.ClickFieldSpecs[field]
		require.True(t, ok, "click alias %q targets unspecified field %q", raw, field)
	}
}

func TestMapHeaderSharedSubIDs(t *testing.T) {
	f, ok := MapHeader(models.ReportTransactions, "Sub_id1")
	require.True(t, ok)
	require.Equal(t, models.FieldSubID1, f)

	f, ok = MapHeader(models.ReportClicks, "sub id 3")
	require.True(t, ok)
	require.Equal(t, models.FieldSubID3, f)
}
