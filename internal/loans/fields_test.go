package loans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRowPadsShortRows(t *testing.T) {
	// spreadsheet readers drop trailing empty cells; a row cut off after
	// registered_at must still decode
	rec := sampleRecord("Maria Silva", time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC))
	rec.ID = "01HTESTTESTTESTTESTTESTTES"
	row := encodeRow(&rec)[:18]

	got, err := decodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Empty(t, got.Plate)
	assert.False(t, got.DeclarationAck)
}

func TestDecodeRowRejectsBadDates(t *testing.T) {
	rec := sampleRecord("Maria Silva", time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC))
	row := encodeRow(&rec)
	row[15] = "2025-03-15" // iso instead of dd/mm/yyyy

	_, err := decodeRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected_return")
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("05/03/2025")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("31/02/2025")
	require.Error(t, err)
}

func TestParseBoolAcceptsLegacySpellings(t *testing.T) {
	// older spreadsheets carried SIM/NÃO
	assert.True(t, parseBool("SIM"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("1"))
	assert.False(t, parseBool("NÃO"))
	assert.False(t, parseBool("false"))
	assert.False(t, parseBool(""))
}

func TestColumnsLayout(t *testing.T) {
	cols := Columns()
	require.NotEmpty(t, cols)
	assert.Equal(t, FieldStatus, cols[0].Name)
	assert.Equal(t, FieldExpectedReturn, cols[1].Name)
	assert.Equal(t, FieldActualReturn, cols[2].Name)

	for _, c := range cols {
		switch c.Name {
		case FieldStatus, FieldID, FieldRegisteredAt:
			assert.False(t, c.Editable, "%s must not be editable", c.Name)
		default:
			assert.True(t, c.Editable, "%s should be editable", c.Name)
		}
	}
}
