package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// ErrEmptyFile marks a file with no header line.
var ErrEmptyFile = errors.New("file contains no header line")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sniffDelimiter picks ';' when the header line contains one, otherwise ','.
func sniffDelimiter(headerLine []byte) rune {
	if bytes.ContainsRune(headerLine, ';') {
		return ';'
	}
	return ','
}

// ReadCSV reads a complete report file into a RawTable. The byte-order mark
// is stripped, the delimiter is auto-detected from the header line, and
// quoted fields with embedded delimiters or escaped quotes are handled by the
// csv reader.
func ReadCSV(data []byte) (*models.RawTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	headerLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		headerLine = data[:idx]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(headerLine)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV records: %w", err)
		}
		rows = append(rows, record)
	}

	return &models.RawTable{Headers: headers, Rows: rows}, nil
}
