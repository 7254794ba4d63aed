package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSVCommaDelimiter(t *testing.T) {
	table, err := ReadCSV([]byte("Order ID,Item ID\nA1,10\nA2,20\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Order ID", "Item ID"}, table.Headers)
	require.Len(t, table.Rows, 2)
	require.Equal(t, []string{"A1", "10"}, table.Rows[0])
}

func TestReadCSVSemicolonDelimiter(t *testing.T) {
	table, err := ReadCSV([]byte("Order ID;Item ID\nA1;10\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Order ID", "Item ID"}, table.Headers)
	require.Equal(t, []string{"A1", "10"}, table.Rows[0])
}

func TestReadCSVStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Order ID,Item ID\nA1,10\n")...)
	table, err := ReadCSV(data)
	require.NoError(t, err)
	require.Equal(t, "Order ID", table.Headers[0])
}

func TestReadCSVQuotedFields(t *testing.T) {
	// Embedded delimiter and escaped quotes inside a quoted field.
	table, err := ReadCSV([]byte("Order ID,Item Name\nA1,\"Mouse; the \"\"best\"\", really\"\n"))
	require.NoError(t, err)
	require.Equal(t, `Mouse; the "best", really`, table.Rows[0][1])
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV([]byte(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadCSV([]byte{0xEF, 0xBB, 0xBF})
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadCSVRaggedRowsAccepted(t *testing.T) {
	table, err := ReadCSV([]byte("Order ID,Item ID,Status\nA1,10\nA2,20,completed,extra\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Len(t, table.Rows[0], 2)
	require.Len(t, table.Rows[1], 4)
}
