package sheet

import (
	"strings"
	"unicode"

	"github.com/iudanet/commentfeed/internal/models"
)

// Columns holds the index of every semantic field in a feed row.
type Columns struct {
	Timestamp       int
	ClientTimestamp int
	Name            int
	Comment         int
	Blocked         int
}

// DefaultColumns is the positional layout used when the header does not
// name a field: timestamp, client timestamp, name, comment, blocked.
var DefaultColumns = Columns{
	Timestamp:       0,
	ClientTimestamp: 1,
	Name:            2,
	Comment:         3,
	Blocked:         4,
}

// ResolveColumns maps header cells to field indices. Matching is
// case-insensitive; "timestamp", "name" and "comment" must equal the cell
// with whitespace removed, "client_timestamp" and "blocked" may appear
// anywhere in the cell. The first matching cell wins. Fields without a
// matching cell keep their DefaultColumns index. It never fails.
func ResolveColumns(header []string) Columns {
	cols := DefaultColumns
	cols.Timestamp = findColumn(header, exactly("timestamp"), DefaultColumns.Timestamp)
	cols.ClientTimestamp = findColumn(header, containing("client_timestamp"), DefaultColumns.ClientTimestamp)
	cols.Name = findColumn(header, exactly("name"), DefaultColumns.Name)
	cols.Comment = findColumn(header, exactly("comment"), DefaultColumns.Comment)
	cols.Blocked = findColumn(header, containing("blocked"), DefaultColumns.Blocked)
	return cols
}

// Record builds a comment record from a data row. Indices beyond the row
// yield empty values.
func (c Columns) Record(row []string) models.CommentRecord {
	return models.CommentRecord{
		ServerTimestamp: cell(row, c.Timestamp),
		ClientTimestamp: cell(row, c.ClientTimestamp),
		Name:            cell(row, c.Name),
		Comment:         cell(row, c.Comment),
		Blocked:         ParseBlocked(cell(row, c.Blocked)),
	}
}

// Records treats the first row of table as the header and converts every
// following row. Blank padding rows are kept so row counts line up with the
// feed; the store skips them.
func Records(table [][]string) []models.CommentRecord {
	if len(table) == 0 {
		return nil
	}
	cols := ResolveColumns(table[0])
	records := make([]models.CommentRecord, 0, len(table)-1)
	for _, row := range table[1:] {
		records = append(records, cols.Record(row))
	}
	return records
}

// ParseBlocked interprets the moderation cell. Any non-empty value blocks
// the comment except the false-like literals a checkbox or a human would
// type to mean "not blocked".
func ParseBlocked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "no", "n", "off":
		return false
	default:
		return true
	}
}

type matcher func(cell string) bool

func exactly(name string) matcher {
	return func(cell string) bool {
		return strings.EqualFold(stripSpace(cell), name)
	}
}

func containing(fragment string) matcher {
	return func(cell string) bool {
		return strings.Contains(strings.ToLower(cell), fragment)
	}
}

func findColumn(header []string, match matcher, fallback int) int {
	for i, h := range header {
		if match(h) {
			return i
		}
	}
	return fallback
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
