// Package sink serializes result records to CSV files.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/lasf-data/results-cli/internal/model"
)

// csvHeader is the fixed output schema, one row per extracted record.
var csvHeader = []string{"Position", "FirstName", "LastName", "Score", "Year", "Competition", "Type"}

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9]`)

// FileName builds the output filename for one (year, competition, type)
// triple. Competition names are sanitized for the filesystem; the data rows
// keep the original string.
func FileName(pctx model.ParseContext) string {
	safe := unsafeNameRe.ReplaceAllString(pctx.Competition, "_")
	return fmt.Sprintf("%d_%s_%s.csv", pctx.Year, safe, pctx.Type)
}

// Write serializes records to <outputDir>/<year>_<competition>_<type>.csv,
// overwriting any existing file. Returns the written path.
func Write(records []model.ResultRecord, pctx model.ParseContext, outputDir string) (string, error) {
	path := filepath.Join(outputDir, FileName(pctx))

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "sink: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return "", eris.Wrap(err, "sink: write header")
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Position),
			rec.FirstName,
			rec.LastName,
			strconv.FormatFloat(rec.Score, 'f', 2, 64),
			strconv.Itoa(pctx.Year),
			pctx.Competition,
			string(pctx.Type),
		}
		if err := w.Write(row); err != nil {
			return "", eris.Wrap(err, "sink: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "sink: flush")
	}

	return path, nil
}
