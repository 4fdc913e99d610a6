package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWebsiteRecords_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "websites.json", `[
		{
			"organization": "Acme",
			"pairs": [
				{"name": "John Smith", "email": "john.smith@acme.com"},
				{"name": "Amy Lee", "email": "amy.lee@acme.com"}
			],
			"format_hint": "first.last"
		},
		{"organization": "Globex"}
	]`)

	records, err := ReadWebsiteRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Acme", records[0].Organization)
	require.Len(t, records[0].Pairs, 2)
	assert.Equal(t, "john.smith@acme.com", records[0].Pairs[0].Email)
	assert.Equal(t, "first.last", records[0].FormatHint)

	assert.Equal(t, "Globex", records[1].Organization)
	assert.Empty(t, records[1].Pairs)
}

func TestReadWebsiteRecords_YAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "websites.yaml", `
- organization: Acme
  pairs:
    - name: John Smith
      email: john.smith@acme.com
  format_hint: first.last
`)

	records, err := ReadWebsiteRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Organization)
	require.Len(t, records[0].Pairs, 1)
	assert.Equal(t, "John Smith", records[0].Pairs[0].Name)
	assert.Equal(t, "first.last", records[0].FormatHint)
}

func TestReadWebsiteRecords_BadPayload(t *testing.T) {
	t.Parallel()

	_, err := ReadWebsiteRecords(writeFile(t, "bad.json", `{"not": "a list"`))
	assert.Error(t, err)

	_, err = ReadWebsiteRecords(writeFile(t, "bad.yaml", "\t- broken"))
	assert.Error(t, err)
}

func TestReadWebsiteRecords_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadWebsiteRecords(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
