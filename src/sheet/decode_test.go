package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("a,b,c\n1,2,3\n")
	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"a", "b", "c"}, grid[0])
	assert.Equal(t, []string{"1", "2", "3"}, grid[1])
}

func TestDecodeSemicolonDelimited(t *testing.T) {
	data := []byte("a;b;c\n1;2;3\n")
	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"a", "b", "c"}, grid[0])
}

func TestDecodeTabDelimited(t *testing.T) {
	data := []byte("a\tb\tc\n1\t2\t3\n")
	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"1", "2", "3"}, grid[1])
}

func TestDecodeQuotedFields(t *testing.T) {
	data := []byte("name,amount\n\"Cruz, Jane\",\"1,234.56\"\n")
	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Cruz, Jane", "1,234.56"}, grid[1])
}

func TestDecodeRaggedRows(t *testing.T) {
	data := []byte("a,b,c\n1,2\nx,y,z,w\n")
	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Len(t, grid[1], 2)
	assert.Len(t, grid[2], 4)
}

func TestDecodeSingleColumnUnparseable(t *testing.T) {
	_, err := Decode([]byte("just one column\nno delimiter here\n"))
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestDecodeXLSXFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2026-01-05", "100"}))

	// A second worksheet must not shadow the first.
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]interface{}{"ignored"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	grid, gerr := Decode(buf.Bytes())
	require.NoError(t, gerr)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"date", "amount"}, grid[0])
	assert.Equal(t, []string{"2026-01-05", "100"}, grid[1])
}

func TestDecodeCorruptZipFails(t *testing.T) {
	// Zip magic with garbage behind it reaches the workbook reader and
	// fails there rather than falling back to text.
	_, err := Decode([]byte{0x50, 0x4B, 0x03, 0x04, 0xDE, 0xAD, 0xBE, 0xEF})
	assert.Error(t, err)
}
