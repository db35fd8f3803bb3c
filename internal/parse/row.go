package parse

import "fmt"

// RowError describes a single row or line that failed field extraction.
// Parsers collect these instead of aborting: one malformed row must never
// cost the rest of a document.
type RowError struct {
	Row int // 1-based line number for PDFs, 0-based row index for sheets
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
