package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobmate/jobboard-service/internal/xlsx"
)

func TestEncode_RoundTrip(t *testing.T) {
	header := []string{"User Name", "Email", "Applied Job Title", "Application Date", "User Resume"}
	rows := [][]any{
		{"Alice Doe", "alice@example.com", "backend engineer", "Fri May 10 2024", "https://cdn/a.pdf"},
		{"Bob Roe", "bob@example.com", "frontend engineer", "Fri May 10 2024", "https://cdn/b.pdf"},
	}

	body, err := xlsx.NewEncoder().Encode("Applications", header, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Applications"}, f.GetSheetList())

	got, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, []string{"Alice Doe", "alice@example.com", "backend engineer", "Fri May 10 2024", "https://cdn/a.pdf"}, got[1])
	assert.Equal(t, "Bob Roe", got[2][0])
}

func TestEncode_HeaderOnly(t *testing.T) {
	body, err := xlsx.NewEncoder().Encode("Empty", []string{"A", "B"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Empty")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, got)
}
