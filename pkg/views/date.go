package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

// domainSectionThreshold is how many resources a domain needs within one
// month before it earns its own section in the date view.
const domainSectionThreshold = 5

// DateView writes the report grouped by the calendar month of each
// resource's latest occurrence, newest months first. Within a month, domains
// over the section threshold get named sections; everything else pools into
// "Other Resources" annotated with its domain.
func (g *Generator) DateView(result models.ScanResult, outputPath string) error {
	g.log.Info("generating date view", logger.String("path", outputPath))

	byMonth := make(map[string]map[string][]resourceEntry)
	for _, e := range buildEntries(result) {
		month := e.latest.MonthKey()
		if byMonth[month] == nil {
			byMonth[month] = make(map[string][]resourceEntry)
		}
		byMonth[month][e.domain] = append(byMonth[month][e.domain], e)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	var b strings.Builder
	writeMetadata(&b, result)
	b.WriteString("# Resources by Date\n\n")

	for _, month := range months {
		fmt.Fprintf(&b, "## %s\n\n", displayMonth(month))

		byDomain := byMonth[month]
		grouped := make(map[string][]resourceEntry)
		var pooled []resourceEntry
		for domain, entries := range byDomain {
			if len(entries) > domainSectionThreshold {
				grouped[domain] = entries
			} else {
				pooled = append(pooled, entries...)
			}
		}

		for _, domain := range domainsByRefs(grouped) {
			fmt.Fprintf(&b, "### %s\n\n", domain)
			for _, e := range sortByLatestDesc(grouped[domain]) {
				fmt.Fprintf(&b, "- [%s](%s)%s (Category: %s)\n",
					formatTitles(e.titles), e.url, formatReferenceCount(e.count), e.category)
			}
			b.WriteString("\n")
		}

		if len(pooled) > 0 {
			if len(grouped) > 0 {
				b.WriteString("### Other Resources\n\n")
			}
			// Stable-sort the pool back to a deterministic order: the
			// per-domain slices arrive in map iteration order.
			sort.SliceStable(pooled, func(i, j int) bool {
				return pooled[i].url < pooled[j].url
			})
			for _, e := range sortByLatestDesc(pooled) {
				fmt.Fprintf(&b, "- [%s](%s)%s (Category: %s, Domain: %s)\n",
					formatTitles(e.titles), e.url, formatReferenceCount(e.count), e.category, e.domain)
			}
			b.WriteString("\n")
		}
	}

	if err := g.store.SaveFile(outputPath, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write date view: %w", err)
	}
	g.log.Info("generated date view", logger.String("path", outputPath))
	return nil
}

// displayMonth turns a "2006-01" key into "January 2006".
func displayMonth(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("January 2006")
}
