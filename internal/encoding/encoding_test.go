package encoding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	require.NoError(t, SaveJSON(path, []sample{{Name: "rice", Value: 130}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadJSON[[]sample](path)
	require.NoError(t, err)
	assert.Equal(t, []sample{{Name: "rice", Value: 130}}, *got)
}

func TestLoadJSON_Missing(t *testing.T) {
	_, err := LoadJSON[sample](filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeJSON[sample](strings.NewReader(`{"name": "rice", "valeu": 1}`))
	require.Error(t, err)

	got, err := DecodeJSON[sample](strings.NewReader(`{"name": "rice", "value": 1}`))
	require.NoError(t, err)
	assert.Equal(t, "rice", got.Name)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, SaveCSV(path, []string{"date", "calories"}, [][]string{
		{"2024-01-15", "750"},
		{"2024-01-16", "500"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,calories\n2024-01-15,750\n2024-01-16,500\n", string(data))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFromPath("history.CSV"))
	assert.Equal(t, FormatJSON, FormatFromPath("history.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("history"))
}
