// Package parse turns raw document text and workbook sheets into result records.
package parse

import (
	"strings"

	"github.com/lasf-data/results-cli/internal/model"
)

// Classify decides which result category a document's text belongs to.
// Keyword containment is case-insensitive; Lithuanian keywords are checked
// alongside their English counterparts. Text matching neither qualification
// nor final keywords falls back to general, so classification never fails.
func Classify(text string) model.ResultType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "kvalifikacija") || strings.Contains(lower, "qualification"):
		return model.ResultTypeQualification
	case strings.Contains(lower, "finalas") || strings.Contains(lower, "final"):
		return model.ResultTypeFinal
	default:
		return model.ResultTypeGeneral
	}
}

// ClassifySheet classifies a workbook sheet by its name. Unlike Classify,
// a sheet whose name matches no keyword group is skipped, not defaulted:
// workbooks carry auxiliary sheets (judges, schedules) that hold no results.
func ClassifySheet(name string) (model.ResultType, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "kvalifikacija") || strings.Contains(lower, "qualification"):
		return model.ResultTypeQualification, true
	case strings.Contains(lower, "finalas") || strings.Contains(lower, "final"):
		return model.ResultTypeFinal, true
	case strings.Contains(lower, "rezultatai") || strings.Contains(lower, "results"):
		return model.ResultTypeGeneral, true
	default:
		return "", false
	}
}
