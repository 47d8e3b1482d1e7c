package domain

import (
	"sort"
	"time"
)

// CategoryCount is one ordered (category, count) pair within a statistic.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SummaryEntry is one named statistic produced by the aggregator. Data
// ordering is part of the contract: chronological ascending for the monthly
// frequency statistic, descending by count with first-encountered tie order
// for everything else. The chart fields carry the fixed visual convention
// for that statistic so rendering stays deterministic and call-scoped.
type SummaryEntry struct {
	Title         string          `json:"title"`      // table heading, e.g. "Block Summary"
	ChartTitle    string          `json:"chartTitle"` // e.g. "Sightings by Block"
	XLabel        string          `json:"-"`
	YLabel        string          `json:"-"`
	Color         string          `json:"-"` // hex bar color, cosmetic
	RotateXLabels bool            `json:"-"`
	Data          []CategoryCount `json:"data"`
	// DisplayLabels, when set, holds the human x-axis label per Data entry.
	// Only the monthly statistic uses it; the YYYY-MM key in Data stays the
	// sort key so label derivation can never reorder buckets.
	DisplayLabels []string `json:"-"`
}

// counter accumulates category counts while remembering first-encounter
// order, so that equal counts sort stably by arrival.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(category string, n int) {
	if _, seen := c.counts[category]; !seen {
		c.order = append(c.order, category)
	}
	c.counts[category] += n
}

func (c *counter) empty() bool { return len(c.order) == 0 }

// total reports whether any accumulated count is non-zero. Fixed-key
// statistics (age groups, status) pre-register categories and are omitted
// entirely when every bucket stayed at zero.
func (c *counter) total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// descending returns pairs sorted by count descending; the stable sort over
// insertion order keeps first-encountered categories ahead on ties.
func (c *counter) descending() []CategoryCount {
	out := make([]CategoryCount, 0, len(c.order))
	for _, cat := range c.order {
		out = append(out, CategoryCount{Category: cat, Count: c.counts[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ascendingByCategory returns pairs sorted by category key ascending.
// Monthly buckets use YYYY-MM keys, so lexicographic order is chronological.
func (c *counter) ascendingByCategory() []CategoryCount {
	out := make([]CategoryCount, 0, len(c.order))
	for _, cat := range c.order {
		out = append(out, CategoryCount{Category: cat, Count: c.counts[cat]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// monthLabel converts a YYYY-MM bucket key into its display form,
// e.g. "2025-01" -> "January 2025". Falls back to the raw key if the bucket
// key is somehow malformed; the bucket order is decided before labeling and
// is never affected.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// parseObservedAt parses an ISO-8601 timestamp, accepting a trailing Z or
// numeric offset, and tolerating the offset-less form some legacy records
// carry. Returns false on failure; the caller skips the record silently.
func parseObservedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
