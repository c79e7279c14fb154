package importlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry() Entry {
	return Entry{
		Timestamp: time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		Format:    "nubank",
		File:      "extrato.csv",
		Imported:  42,
		Skipped:   3,
		Degraded:  1,
		Failed:    0,
	}
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	row := MarshalEntry(entry())
	got, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, entry(), got)
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	assert.Error(t, err)
}

func TestAppend_CreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, entry()))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "import-log.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.Contains(t, lines[1], "nubank")
}

func TestAppend_AppendsWithoutDuplicateHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, entry()))

	second := entry()
	second.Format = "inter"
	require.NoError(t, Append(dir, second))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "nubank", entries[0].Format)
	assert.Equal(t, "inter", entries[1].Format)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}
