package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// ParsedReport is the validated output of one report file, ready for
// deduplication and persistence.
type ParsedReport struct {
	Type         models.ReportType
	Transactions []models.TransactionRecord
	Clicks       []models.ClickRecord
	TotalRows    int
	FailedRows   int
}

// ParseReport reads a complete report file, detects its family, and builds
// validated records. A schema the detector cannot place is fatal; individual
// invalid rows are counted and skipped.
func ParseReport(fileReader io.Reader, fileName string) (*ParsedReport, error) {
	data, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var table *models.RawTable
	if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		table, err = ReadXLSX(data)
	} else {
		table, err = ReadCSV(data)
	}
	if err != nil {
		return nil, err
	}

	reportType, err := DetectReportType(table.Headers)
	if err != nil {
		return nil, err
	}

	if missing := MissingRequiredColumns(reportType, table.Headers); len(missing) > 0 {
		return nil, fmt.Errorf("%s report is missing required columns: %v", reportType, missing)
	}

	report := &ParsedReport{Type: reportType, TotalRows: len(table.Rows)}
	switch reportType {
	case models.ReportTransactions:
		report.Transactions, report.FailedRows = BuildTransactions(table)
	case models.ReportClicks:
		report.Clicks, report.FailedRows = BuildClicks(table)
	}
	return report, nil
}
