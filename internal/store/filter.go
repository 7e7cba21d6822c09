package store

import (
	"strings"

	"spendtrack/internal/core"
)

// Filter derives a filtered view of records, preserving relative order.
// A record passes the text filter when its title or description contains the
// query as a case-insensitive substring; an empty query passes everything.
// The date filter is exact equality; both filters combine with AND.
func Filter(records []core.Expense, textQuery, dateQuery string) []core.Expense {
	text := strings.ToLower(textQuery)

	filtered := make([]core.Expense, 0, len(records))
	for _, rec := range records {
		if text != "" {
			title := strings.ToLower(rec.Title)
			desc := strings.ToLower(rec.Description)
			if !strings.Contains(title, text) && !(desc != "" && strings.Contains(desc, text)) {
				continue
			}
		}
		if dateQuery != "" && rec.Date != dateQuery {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
