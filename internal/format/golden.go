package format

import (
	"fmt"
	"sort"

	"golden/internal/golden"
)

// Options tunes record and comparison tables.
type Options struct {
	Mode Mode
	// MaxURL truncates URL cells; 0 keeps them whole.
	MaxURL int
}

// RecordTable lists every (page, variant) pair of rs, sorted by page then
// variant. Pages without screenshots get a single row with an empty variant.
func RecordTable(rs golden.RecordSet, opts Options) string {
	tb := NewTable(opts.Mode)
	tb.Header("Page", "Variant", "Screenshot")

	pages := make([]string, 0, len(rs.Pages))
	for k := range rs.Pages {
		pages = append(pages, k)
	}
	sort.Strings(pages)

	shots := 0
	for _, key := range pages {
		page := rs.Pages[key]
		aliases := make([]string, 0, len(page.Screenshots))
		for a := range page.Screenshots {
			aliases = append(aliases, a)
		}
		sort.Strings(aliases)
		if len(aliases) == 0 {
			tb.Row(key, "", "")
			continue
		}
		for _, a := range aliases {
			tb.Row(key, a, Truncate(page.Screenshots[a], opts.MaxURL))
			shots++
		}
	}
	tb.Footer(fmt.Sprintf("%d pages", len(pages)), fmt.Sprintf("%d screenshots", shots), "")
	return tb.String()
}

// ComparisonTable lists the changes of c in order. Page-level rows show
// the publicUrl transition with an empty variant column.
func ComparisonTable(c golden.Comparison, opts Options) string {
	tb := NewTable(opts.Mode)
	tb.Header("", "Page", "Variant", "Baseline", "Candidate")
	for _, ch := range c.Changes {
		tb.Row(KindMark(ch.Kind), ch.PageKey, ch.Alias,
			Truncate(ch.BaseURL, opts.MaxURL), Truncate(ch.HeadURL, opts.MaxURL))
	}
	tb.Footer("", Summary(c), "", "", "")
	tb.Columns(ColumnConfig{Number: 1, Align: AlignCenter})
	return tb.String()
}

// Summary is a one-line count of a comparison's changes.
func Summary(c golden.Comparison) string {
	return fmt.Sprintf("%d added, %d removed, %d changed, %d unchanged",
		c.Count(golden.Added), c.Count(golden.Removed), c.Count(golden.Changed), c.Unchanged)
}
