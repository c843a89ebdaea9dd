package utils

import "strings"

// The CSV exports are a contract for spreadsheet consumers: text columns are
// always double-quoted, monetary columns are plain decimal numbers, and the
// column order is fixed. encoding/csv only quotes cells that need it, which
// would change the emitted bytes, so rows are rendered by hand here.

// CSVText renders a text cell, always double-quoted with embedded quotes
// doubled.
func CSVText(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVBuilder accumulates comma-separated rows terminated by newlines.
type CSVBuilder struct {
	sb strings.Builder
}

// WriteRow appends one row of already-rendered cells.
func (b *CSVBuilder) WriteRow(cells ...string) {
	b.sb.WriteString(strings.Join(cells, ","))
	b.sb.WriteByte('\n')
}

// String returns the accumulated CSV document.
func (b *CSVBuilder) String() string {
	return b.sb.String()
}
