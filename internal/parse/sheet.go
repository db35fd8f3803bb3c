package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/lasf-data/results-cli/internal/fetcher"
	"github.com/lasf-data/results-cli/internal/model"
)

// Fixed column convention shared by every result sheet.
const (
	colPosition = 0
	colName     = 1
	colScore    = 2
)

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// ParseSheet extracts result records from a workbook sheet using the strategy
// for the given result type. Rows missing required cells are skipped quietly;
// rows with unparseable cells become RowErrors. Either way the rest of the
// sheet keeps parsing.
func ParseSheet(sheet fetcher.Sheet, typ model.ResultType) ([]model.ResultRecord, []RowError) {
	// General sheets carry a single header row; qualification and final
	// sheets have two.
	headerRows := 2
	if typ == model.ResultTypeGeneral {
		headerRows = 1
	}

	var records []model.ResultRecord
	var rowErrs []RowError

	for i, row := range sheet.Rows {
		if i < headerRows {
			continue
		}

		rec, ok, err := parseSheetRow(row, typ)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i, Err: err})
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}

	return records, rowErrs
}

// cellPresent reports whether the row has a non-empty cell at idx. Short
// rows and explicitly empty cells both count as absent.
func cellPresent(row []fetcher.Cell, idx int) bool {
	return idx < len(row) && row[idx].Kind != fetcher.CellEmpty
}

func parseSheetRow(row []fetcher.Cell, typ model.ResultType) (model.ResultRecord, bool, error) {
	if !cellPresent(row, colPosition) || !cellPresent(row, colName) {
		return model.ResultRecord{}, false, nil
	}
	if typ == model.ResultTypeQualification && !cellPresent(row, colScore) {
		return model.ResultRecord{}, false, nil
	}

	pos, err := parsePosition(row[colPosition], typ)
	if err != nil {
		return model.ResultRecord{}, false, err
	}

	first, last := splitName(row[colName].String())

	score := 0.0
	if cellPresent(row, colScore) {
		score, err = row[colScore].Float()
		if err != nil {
			return model.ResultRecord{}, false, eris.Wrap(err, "score cell")
		}
	}

	return model.ResultRecord{
		FirstName: first,
		LastName:  last,
		Position:  pos,
		Score:     score,
	}, true, nil
}

// parsePosition reads the position cell. The general path also accepts
// string cells like "3rd" or "3." by stripping every non-digit character.
func parsePosition(cell fetcher.Cell, typ model.ResultType) (int, error) {
	if typ != model.ResultTypeGeneral || cell.Kind == fetcher.CellNumeric {
		pos, err := cell.Int()
		if err != nil {
			return 0, eris.Wrap(err, "position cell")
		}
		return pos, nil
	}

	digits := nonDigitRe.ReplaceAllString(cell.String(), "")
	pos, err := strconv.Atoi(digits)
	if err != nil {
		return 0, eris.Wrapf(err, "position cell %q", cell.String())
	}
	return pos, nil
}

// splitName splits a full name cell on single spaces. The first token is the
// first name, the second the last name; a lone token leaves the last name
// empty and further tokens are dropped.
func splitName(full string) (string, string) {
	parts := strings.Split(full, " ")
	first := parts[0]
	last := ""
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
