package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

func TestParseReportTransactionsCSV(t *testing.T) {
	csvData := "Order ID,Item ID,Valor Real\nA1,100,\"10,00\"\nA2,,\"20,00\"\n"

	report, err := ParseReport(strings.NewReader(csvData), "report.csv")
	require.NoError(t, err)
	require.Equal(t, models.ReportTransactions, report.Type)
	require.Equal(t, 2, report.TotalRows)
	require.Equal(t, 1, report.FailedRows)
	require.Len(t, report.Transactions, 1)
}

func TestParseReportMissingRequiredColumnIsFatal(t *testing.T) {
	// Detected as a transaction report via the commission header, but no
	// order/item columns exist, so every row would be rejected.
	csvData := "Comissão Líquida,Status\n\"5,00\",Completed\n"

	_, err := ParseReport(strings.NewReader(csvData), "report.csv")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing required columns")
}

func TestParseReportXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Order ID", "Item ID", "Valor Real"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"A1", "100", "10,00"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	report, err := ParseReport(buf, "report.xlsx")
	require.NoError(t, err)
	require.Equal(t, models.ReportTransactions, report.Type)
	require.Len(t, report.Transactions, 1)
	require.Equal(t, "A1", report.Transactions[0].OrderID)
	require.Equal(t, int64(100), *report.Transactions[0].ItemID)
}

func TestParseReportUnrecognizedHeaders(t *testing.T) {
	_, err := ParseReport(strings.NewReader("foo,bar\n1,2\n"), "report.csv")
	require.ErrorIs(t, err, ErrUnknownReportType)
}
