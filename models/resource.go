package models

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Date is a day-precision date, the only temporal resolution the scanner ever
// sees (post dates come from Jekyll filenames). It marshals as "YYYY-MM-DD" so
// the detailed artifact round-trips losslessly.
type Date struct {
	time.Time
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MonthKey returns the YYYY-MM grouping key used by the date view.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Occurrence is one observed sighting of a URL inside one post: when it was
// posted, which source document linked it, the heading path active at the link
// site, and the link text used there. Immutable once recorded.
type Occurrence struct {
	Date      Date   `json:"date"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	TitleUsed string `json:"title_used"`
}

// Resource is a single URL aggregated across every post that mentioned it.
// Titles is a set (serialized in first-sighting order); Count always equals
// len(Occurrences).
type Resource struct {
	URL         string       `json:"url"`
	Titles      []string     `json:"titles"`
	Count       int          `json:"count"`
	Occurrences []Occurrence `json:"occurrences"`
}

// NewResource creates an empty record for a URL seen for the first time.
func NewResource(url string) *Resource {
	return &Resource{URL: url}
}

// AddOccurrence appends one sighting and records its title, keeping the title
// set free of duplicates.
func (r *Resource) AddOccurrence(date Date, source, category, title string) {
	if !slices.Contains(r.Titles, title) {
		r.Titles = append(r.Titles, title)
	}
	r.Occurrences = append(r.Occurrences, Occurrence{
		Date:      date,
		Source:    source,
		Category:  category,
		TitleUsed: title,
	})
	r.Count = len(r.Occurrences)
}

// LatestDate returns the most recent occurrence date. The zero Date is
// returned for a resource with no occurrences, which the aggregator never
// produces.
func (r *Resource) LatestDate() Date {
	var latest Date
	for _, occ := range r.Occurrences {
		if occ.Date.After(latest) {
			latest = occ.Date
		}
	}
	return latest
}

// ScanMetadata describes the run that produced a ScanResult.
type ScanMetadata struct {
	TotalUniqueURLs int      `json:"total_unique_urls"`
	StartDate       *Date    `json:"start_date"`
	ExcludedDomains []string `json:"excluded_domains"`
}

// ScanResult is the full aggregation artifact: everything the view renderers
// consume, and the payload of the detailed JSON view.
type ScanResult struct {
	Metadata  ScanMetadata         `json:"metadata"`
	Resources map[string]*Resource `json:"resources"`
}

// SortedURLs returns the resource URLs in ascending order, the iteration
// order every renderer uses.
func (s ScanResult) SortedURLs() []string {
	urls := make([]string, 0, len(s.Resources))
	for url := range s.Resources {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
