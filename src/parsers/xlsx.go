package parsers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// ReadXLSX reads the first sheet of an XLSX export into the same RawTable
// shape the CSV reader produces, so both formats share one pipeline.
func ReadXLSX(data []byte) (*models.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &models.RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}
