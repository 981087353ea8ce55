package fixtures

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows(t *testing.T) {
	r := csv.NewReader(strings.NewReader("id,name,slug\n1,Films,films\n2,Books,books\n"))
	var seen []map[string]string
	n, err := rows(r, func(rec map[string]string) error {
		seen = append(seen, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Films", seen[0]["name"])
	assert.Equal(t, "books", seen[1]["slug"])
}

func TestRowsEmptyFile(t *testing.T) {
	r := csv.NewReader(strings.NewReader(""))
	_, err := rows(r, func(map[string]string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading header")
}

func TestAtoi(t *testing.T) {
	rec := map[string]string{"id": "42", "year": "not-a-number"}

	id, err := atoi(rec, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = atoi(rec, "year")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column year")
}
