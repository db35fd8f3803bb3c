package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/lasf-data/results-cli/internal/model"
)

var lineSplitRe = regexp.MustCompile(`\r?\n`)

var (
	// qualLineRe recognizes fixed-width qualification tables:
	// "<pos> <first> <last> <score>" somewhere in the line.
	qualLineRe = regexp.MustCompile(`\d+\s+[A-Za-z]+\s+[A-Za-z]+\s+\d+\.\d+`)
	// finalLineRe matches final-bracket listings like
	// "1. Vardenis Pavardenis (Team) 98.5".
	finalLineRe = regexp.MustCompile(`(\d+)\.\s+([A-Za-z]+)\s+([A-Za-z]+).*?(\d+\.?\d*)`)
	// generalLineRe is the loosest shape: any dot/space run between position
	// and name, and the trailing score is optional.
	generalLineRe = regexp.MustCompile(`(\d+)[.\s]+([A-Za-z]+)\s+([A-Za-z]+)(?:.*?(\d+\.?\d*))?`)
)

// ParsePDF extracts result records from PDF plain text using the strategy
// for the given result type. Each line is handled independently; lines that
// do not look like result rows are skipped silently, and rows whose numeric
// fields fail to parse are collected as RowErrors without stopping the scan.
func ParsePDF(text string, typ model.ResultType) ([]model.ResultRecord, []RowError) {
	var records []model.ResultRecord
	var rowErrs []RowError

	for i, line := range lineSplitRe.Split(text, -1) {
		lineNo := i + 1

		var rec model.ResultRecord
		var ok bool
		var err error
		switch typ {
		case model.ResultTypeQualification:
			rec, ok, err = parseQualificationLine(line)
		case model.ResultTypeFinal:
			rec, ok, err = parseScannedLine(line, finalLineRe)
		default:
			rec, ok, err = parseScannedLine(line, generalLineRe)
		}

		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: lineNo, Err: err})
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}

	return records, rowErrs
}

// parseQualificationLine requires the whole-table shape to appear in the
// line, then reads the first four whitespace-separated tokens.
func parseQualificationLine(line string) (model.ResultRecord, bool, error) {
	if !qualLineRe.MatchString(line) {
		return model.ResultRecord{}, false, nil
	}

	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) < 4 {
		return model.ResultRecord{}, false, nil
	}

	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.ResultRecord{}, false, eris.Wrapf(err, "parse position %q", parts[0])
	}
	score, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return model.ResultRecord{}, false, eris.Wrapf(err, "parse score %q", parts[3])
	}

	return model.ResultRecord{
		FirstName: parts[1],
		LastName:  parts[2],
		Position:  pos,
		Score:     score,
	}, true, nil
}

// parseScannedLine takes the first regex match in the line. An empty score
// capture (possible for the general pattern) defaults to 0.
func parseScannedLine(line string, re *regexp.Regexp) (model.ResultRecord, bool, error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return model.ResultRecord{}, false, nil
	}

	pos, err := strconv.Atoi(m[1])
	if err != nil {
		return model.ResultRecord{}, false, eris.Wrapf(err, "parse position %q", m[1])
	}

	score := 0.0
	if m[4] != "" {
		score, err = strconv.ParseFloat(m[4], 64)
		if err != nil {
			return model.ResultRecord{}, false, eris.Wrapf(err, "parse score %q", m[4])
		}
	}

	return model.ResultRecord{
		FirstName: m[2],
		LastName:  m[3],
		Position:  pos,
		Score:     score,
	}, true, nil
}
