package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasf-data/results-cli/internal/fetcher"
	"github.com/lasf-data/results-cli/internal/model"
)

func headerRow(cols ...string) []fetcher.Cell {
	row := make([]fetcher.Cell, len(cols))
	for i, c := range cols {
		row[i] = fetcher.NewStringCell(c)
	}
	return row
}

func resultRow(pos float64, name string, score float64) []fetcher.Cell {
	return []fetcher.Cell{
		fetcher.NewNumericCell(pos),
		fetcher.NewStringCell(name),
		fetcher.NewNumericCell(score),
	}
}

func TestParseSheet_Qualification(t *testing.T) {
	sheet := fetcher.Sheet{
		Name: "Kvalifikacija",
		Rows: [][]fetcher.Cell{
			headerRow("Kvalifikacija"),
			headerRow("Vieta", "Vardas", "Taškai"),
			resultRow(1, "Jonas Jonaitis", 95.5),
			resultRow(2, "Petras Petraitis", 91.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeQualification)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 2)
	assert.Equal(t, model.ResultRecord{
		FirstName: "Jonas", LastName: "Jonaitis", Position: 1, Score: 95.5,
	}, records[0])
}

func TestParseSheet_Qualification_SkipsTwoHeaderRows(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			resultRow(1, "Jonas Jonaitis", 95.5),
			resultRow(2, "Petras Petraitis", 91.0),
			resultRow(3, "Trecias Zmogus", 88.0),
		},
	}

	// Rows 0 and 1 are treated as headers even when they look like data.
	records, _ := ParseSheet(sheet, model.ResultTypeQualification)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Position)
}

func TestParseSheet_Qualification_RequiresScore(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			headerRow("h"),
			{fetcher.NewNumericCell(1), fetcher.NewStringCell("Jonas Jonaitis")},
			resultRow(2, "Petras Petraitis", 91.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeQualification)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Position)
}

func TestParseSheet_EmptyCellsSkipRowQuietly(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			headerRow("h"),
			// Blank position cell.
			{fetcher.NewStringCell(""), fetcher.NewStringCell("Jonas Jonaitis"), fetcher.NewNumericCell(95.5)},
			// Blank name cell.
			{fetcher.NewNumericCell(2), fetcher.NewStringCell(""), fetcher.NewNumericCell(91.0)},
			// Blank score cell on a qualification sheet.
			{fetcher.NewNumericCell(3), fetcher.NewStringCell("Petras Petraitis"), fetcher.NewStringCell("")},
			resultRow(4, "Kazys Kazaitis", 88.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeQualification)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Position)
}

func TestParseSheet_Final_ScoreDefaultsToZero(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			headerRow("h"),
			{fetcher.NewNumericCell(1), fetcher.NewStringCell("Jonas Jonaitis")},
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeFinal)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, 0.0, records[0].Score)
}

func TestParseSheet_Qualification_TextPositionIsRowError(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			headerRow("h"),
			// Position typed as text, even numeric-looking, is not accepted
			// outside the general path.
			{fetcher.NewStringCell("3"), fetcher.NewStringCell("Petras Petraitis"), fetcher.NewNumericCell(90.0)},
			resultRow(4, "Kazys Kazaitis", 88.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeQualification)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Position)
}

func TestParseSheet_General_StringPosition(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("Vieta", "Vardas", "Taškai"),
			{fetcher.NewStringCell("3rd"), fetcher.NewStringCell("Petras Petraitis")},
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeGeneral)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, model.ResultRecord{
		FirstName: "Petras", LastName: "Petraitis", Position: 3, Score: 0,
	}, records[0])
}

func TestParseSheet_General_SkipsOneHeaderRow(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			resultRow(1, "Jonas Jonaitis", 95.5),
			resultRow(2, "Petras Petraitis", 91.0),
		},
	}

	records, _ := ParseSheet(sheet, model.ResultTypeGeneral)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Position)
}

func TestParseSheet_General_UnparseablePositionIsolated(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			{fetcher.NewStringCell("no digits"), fetcher.NewStringCell("Kazys Kazaitis")},
			resultRow(2, "Petras Petraitis", 91.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeGeneral)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 1, rowErrs[0].Row)
	require.Len(t, records, 1)
	assert.Equal(t, "Petras", records[0].FirstName)
}

func TestParseSheet_Final_StringPositionIsolated(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			headerRow("h"),
			{fetcher.NewStringCell("DNF"), fetcher.NewStringCell("Kazys Kazaitis")},
			{fetcher.NewNumericCell(2), fetcher.NewStringCell("Petras Petraitis")},
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeFinal)
	require.Len(t, rowErrs, 1)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Position)
}

func TestParseSheet_SingleTokenName(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			{fetcher.NewNumericCell(1), fetcher.NewStringCell("Mononymous")},
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeGeneral)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, "Mononymous", records[0].FirstName)
	assert.Empty(t, records[0].LastName)
}

func TestParseSheet_MissingCellsSkippedQuietly(t *testing.T) {
	sheet := fetcher.Sheet{
		Rows: [][]fetcher.Cell{
			headerRow("h"),
			{},
			{fetcher.NewNumericCell(1)},
			resultRow(2, "Petras Petraitis", 91.0),
		},
	}

	records, rowErrs := ParseSheet(sheet, model.ResultTypeGeneral)
	assert.Empty(t, rowErrs)
	assert.Len(t, records, 1)
}
