package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeed(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestReadLines(t *testing.T) {
	content := []byte("TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North\n" +
		"\n" +
		"T002|2024-12-01|P102|Mouse|1|500|C002|South\n")

	lines, err := ReadLines(writeFeed(t, content))
	require.NoError(t, err)

	// Header and blank line are dropped
	require.Len(t, lines, 2)
	assert.Equal(t, "T001|2024-12-01|P101|Laptop|2|45000|C001|North", lines[0])
	assert.Equal(t, "T002|2024-12-01|P102|Mouse|1|500|C002|South", lines[1])
}

func TestReadLines_Latin1Fallback(t *testing.T) {
	// "Café" with a latin-1 encoded é (0xE9), invalid as UTF-8
	content := []byte("Header\nT001|2024-12-01|P101|Caf\xe9|1|500|C001|North\n")

	lines, err := ReadLines(writeFeed(t, content))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Café")
}

func TestReadLines_MissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadLines_HeaderOnly(t *testing.T) {
	lines, err := ReadLines(writeFeed(t, []byte("TransactionID|Date\n")))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
