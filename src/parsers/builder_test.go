package parsers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

func transactionTable(rows ...[]string) *models.RawTable {
	return &models.RawTable{
		Headers: []string{"Order ID", "Item ID", "Purchase Time", "Valor Real", "Comissão Líquida", "Status do Pedido", "Quantidade"},
		Rows:    rows,
	}
}

func TestBuildTransactions(t *testing.T) {
	table := transactionTable(
		[]string{"A1", "100", "2024-01-15 10:30:00", "1.250,50", "R$ 12,50", "Completed", "2"},
	)

	records, failed := BuildTransactions(table)
	require.Zero(t, failed)
	require.Len(t, records, 1)

	rec := records[0]
	require.Equal(t, "A1", rec.OrderID)
	require.Equal(t, int64(100), *rec.ItemID)
	require.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), *rec.PurchaseTime)
	require.True(t, rec.ActualAmount.Decimal.Equal(decimal.RequireFromString("1250.50")))
	require.True(t, rec.NetCommission.Decimal.Equal(decimal.RequireFromString("12.50")))
	require.Equal(t, "Completed", rec.Status)
	require.Equal(t, int64(2), *rec.Qty)
}

func TestBuildTransactionsRejectsMissingOrderID(t *testing.T) {
	table := transactionTable(
		[]string{"", "100", "2024-01-15 10:30:00", "10,00", "1,00", "Completed", "1"},
		[]string{"A2", "200", "2024-01-15 10:30:00", "10,00", "1,00", "Completed", "1"},
	)

	records, failed := BuildTransactions(table)
	require.Equal(t, 1, failed)
	require.Len(t, records, 1)
	require.Equal(t, "A2", records[0].OrderID)
}

func TestBuildTransactionsRejectsMissingItemID(t *testing.T) {
	table := transactionTable(
		[]string{"A1", "", "2024-01-15 10:30:00", "10,00", "1,00", "Completed", "1"},
		[]string{"A1", "not-a-number", "2024-01-15 10:30:00", "10,00", "1,00", "Completed", "1"},
	)

	records, failed := BuildTransactions(table)
	require.Equal(t, 2, failed)
	require.Empty(t, records)
}

func TestBuildTransactionsAbsentValuesStayAbsent(t *testing.T) {
	table := transactionTable(
		[]string{"A1", "100", "", "-", "", "", ""},
	)

	records, failed := BuildTransactions(table)
	require.Zero(t, failed)
	require.Len(t, records, 1)

	rec := records[0]
	require.Nil(t, rec.PurchaseTime)
	require.False(t, rec.ActualAmount.Valid)
	require.False(t, rec.NetCommission.Valid)
	require.Empty(t, rec.Status)
	require.Nil(t, rec.Qty)
}

func TestBuildTransactionsDropsUnmappedColumns(t *testing.T) {
	table := &models.RawTable{
		Headers: []string{"Order ID", "Item ID", "Mystery Column"},
		Rows:    [][]string{{"A1", "100", "whatever"}},
	}

	records, failed := BuildTransactions(table)
	require.Zero(t, failed)
	require.Len(t, records, 1)
}

func TestMissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name       string
		reportType models.ReportType
		headers    []string
		want       []models.CanonicalField
	}{
		{"transactions complete", models.ReportTransactions,
			[]string{"Order ID", "Item ID", "Valor Real"}, nil},
		{"transactions without item id", models.ReportTransactions,
			[]string{"Order ID", "Valor Real"}, []models.CanonicalField{models.FieldItemID}},
		{"transactions with only commission", models.ReportTransactions,
			[]string{"Comissão Líquida"}, []models.CanonicalField{models.FieldItemID, models.FieldOrderID}},
		{"clicks complete", models.ReportClicks,
			[]string{"Click Time", "Region"}, nil},
		{"clicks without click time", models.ReportClicks,
			[]string{"Region", "Clicks"}, []models.CanonicalField{models.FieldClickTime}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MissingRequiredColumns(tc.reportType, tc.headers))
		})
	}
}

func TestBuildClicks(t *testing.T) {
	table := &models.RawTable{
		Headers: []string{"Horário do Clique", "Região", "Referrer", "Clicks", "sub_id1"},
		Rows: [][]string{
			{"2024-02-01 20:15:00", "BR", "social", "3", "campaign-a"},
			{"2024-02-01 20:16:00", "BR", "", "", ""},
		},
	}

	records, failed := BuildClicks(table)
	require.Zero(t, failed)
	require.Len(t, records, 2)

	require.Equal(t, 3, records[0].ClickPV)
	require.Equal(t, "campaign-a", records[0].SubID1)
	require.Equal(t, 1, records[1].ClickPV, "click_pv defaults to 1")
}

func TestBuildClicksRejectsMissingClickTime(t *testing.T) {
	table := &models.RawTable{
		Headers: []string{"Click Time", "Region"},
		Rows: [][]string{
			{"", "BR"},
			{"garbage", "BR"},
			{"2024-02-01 20:15:00", "BR"},
		},
	}

	records, failed := BuildClicks(table)
	require.Equal(t, 2, failed, "missing click_time rejects the row; no fallback to now")
	require.Len(t, records, 1)
}
