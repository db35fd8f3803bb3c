package parse

import (
	"regexp"
	"strings"
)

// unknownCompetition is returned when neither the filename nor the document
// content yields a usable competition label.
const unknownCompetition = "Unknown Competition"

var (
	// nameNoiseRe strips listing boilerplate from filenames: the results
	// keywords, underscores, and the covered season years.
	nameNoiseRe = regexp.MustCompile(`(?i)rezultatai|results|_|202[1-3]`)
	extRe       = regexp.MustCompile(`(?i)\.(pdf|xlsx|xls)`)
	// seriesRe finds a competition label inside document text, e.g.
	// "Drift serija: Baltijos taurė".
	seriesRe = regexp.MustCompile(`(?i)Drift (serija|series|lyga|league):?\s*(.*)`)
)

// CompetitionName derives a human-readable competition label, preferring the
// filename and falling back to a series header inside the document content.
// The spreadsheet path passes empty content, so its fallback is the literal
// unknown label.
func CompetitionName(fileName, content string) string {
	name := nameNoiseRe.ReplaceAllString(fileName, "")
	name = extRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}

	if m := seriesRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[2])
	}

	return unknownCompetition
}
