package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasf-data/results-cli/internal/model"
)

func TestFileName_Sanitized(t *testing.T) {
	pctx := model.ParseContext{Year: 2022, Competition: "Cup 1", Type: model.ResultTypeFinal}
	assert.Equal(t, "2022_Cup_1_final.csv", FileName(pctx))
}

func TestFileName_Diacritics(t *testing.T) {
	pctx := model.ParseContext{Year: 2023, Competition: "Baltijos taurė", Type: model.ResultTypeGeneral}
	// Multi-byte runes are outside [A-Za-z0-9]: each byte becomes an underscore.
	assert.NotContains(t, FileName(pctx), "ė")
	assert.Contains(t, FileName(pctx), "2023_Baltijos_taur")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	records := []model.ResultRecord{
		{FirstName: "A", LastName: "B", Position: 1, Score: 10.0},
	}
	pctx := model.ParseContext{Year: 2022, Competition: "Cup 1", Type: model.ResultTypeFinal}

	path, err := Write(records, pctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2022_Cup_1_final.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "Position,FirstName,LastName,Score,Year,Competition,Type\n" +
		"1,A,B,10.00,2022,Cup 1,final\n"
	assert.Equal(t, want, string(data))
}

func TestWrite_UnsanitizedCompetitionInRows(t *testing.T) {
	dir := t.TempDir()
	records := []model.ResultRecord{
		{FirstName: "Jonas", LastName: "Jonaitis", Position: 1, Score: 95.5},
	}
	pctx := model.ParseContext{Year: 2021, Competition: "Drift & Co", Type: model.ResultTypeQualification}

	path, err := Write(records, pctx, dir)
	require.NoError(t, err)

	// Filename is filesystem-safe, the row keeps the original string.
	assert.Equal(t, filepath.Join(dir, "2021_Drift___Co_qualification.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Drift & Co")
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	pctx := model.ParseContext{Year: 2022, Competition: "Cup", Type: model.ResultTypeFinal}

	_, err := Write([]model.ResultRecord{{Position: 1, Score: 1}}, pctx, dir)
	require.NoError(t, err)
	path, err := Write([]model.ResultRecord{{Position: 2, Score: 2}}, pctx, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "1,,,1.00")
	assert.Contains(t, string(data), "2,,,2.00")
}

func TestWrite_EmptyRecords(t *testing.T) {
	dir := t.TempDir()
	pctx := model.ParseContext{Year: 2022, Competition: "Cup", Type: model.ResultTypeGeneral}

	path, err := Write(nil, pctx, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Position,FirstName,LastName,Score,Year,Competition,Type\n", string(data))
}

func TestWrite_UnwritableDir(t *testing.T) {
	pctx := model.ParseContext{Year: 2022, Competition: "Cup", Type: model.ResultTypeFinal}
	_, err := Write(nil, pctx, "/nonexistent/output")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink: create")
}
