// Package views renders the markdown and JSON reports derived from one scan
// result. Every renderer is a pure function of the result; files are written
// through pkg/storage.
package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bitcoinsearch/bitdevs-radar/internal/common"
	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/storage"
)

// Generator holds the collaborators every view shares.
type Generator struct {
	store *storage.Storage
	log   logger.Logger
}

func New(store *storage.Storage, log logger.Logger) *Generator {
	return &Generator{store: store, log: log}
}

// resourceEntry is the view-ready projection of one resource: its grouping
// keys precomputed, its occurrences reduced to a latest date.
type resourceEntry struct {
	url      string
	titles   []string
	count    int
	category string
	domain   string
	latest   models.Date
}

// buildEntries flattens a result into entries in URL-ascending order, the
// deterministic base order all later sorts are stable over.
func buildEntries(result models.ScanResult) []resourceEntry {
	urls := result.SortedURLs()
	entries := make([]resourceEntry, 0, len(urls))
	for _, url := range urls {
		res := result.Resources[url]
		if len(res.Occurrences) == 0 {
			continue
		}
		entries = append(entries, resourceEntry{
			url:      url,
			titles:   res.Titles,
			count:    res.Count,
			category: mostCommonCategory(res),
			domain:   common.Domain(url),
			latest:   res.LatestDate(),
		})
	}
	return entries
}

// mostCommonCategory picks the category appearing in the plurality of a
// resource's occurrences. Ties go to the first category to reach the maximum
// in occurrence order, which is deterministic because occurrences keep scan
// order.
func mostCommonCategory(res *models.Resource) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, occ := range res.Occurrences {
		counts[occ.Category]++
		if counts[occ.Category] > bestCount {
			best, bestCount = occ.Category, counts[occ.Category]
		}
	}
	return best
}

// formatReferenceCount renders the "(N references)" clause, empty for a
// single reference.
func formatReferenceCount(count int) string {
	if count == 1 {
		return ""
	}
	return fmt.Sprintf(" (%d references)", count)
}

func formatTitles(titles []string) string {
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " | ")
}

// sortByLatestDesc orders entries newest-first. The sort is stable, so ties
// keep the URL-ascending base order.
func sortByLatestDesc(entries []resourceEntry) []resourceEntry {
	sorted := make([]resourceEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].latest.Before(sorted[i].latest)
	})
	return sorted
}

func groupByDomain(entries []resourceEntry) map[string][]resourceEntry {
	byDomain := make(map[string][]resourceEntry)
	for _, e := range entries {
		byDomain[e.domain] = append(byDomain[e.domain], e)
	}
	return byDomain
}

// domainsByRefs orders domain keys by total reference count descending, ties
// by name ascending.
func domainsByRefs(byDomain map[string][]resourceEntry) []string {
	refs := make(map[string]int, len(byDomain))
	domains := make([]string, 0, len(byDomain))
	for d, entries := range byDomain {
		domains = append(domains, d)
		for _, e := range entries {
			refs[d] += e.count
		}
	}
	sort.Slice(domains, func(i, j int) bool {
		if refs[domains[i]] != refs[domains[j]] {
			return refs[domains[i]] > refs[domains[j]]
		}
		return domains[i] < domains[j]
	})
	return domains
}

// writeMetadata renders the shared report preamble.
func writeMetadata(b *strings.Builder, result models.ScanResult) {
	totalReferences := 0
	var minDate, maxDate models.Date
	haveDates := false
	domains := make(map[string]struct{})

	for url, res := range result.Resources {
		totalReferences += res.Count
		domains[common.Domain(url)] = struct{}{}
		for _, occ := range res.Occurrences {
			if !haveDates {
				minDate, maxDate = occ.Date, occ.Date
				haveDates = true
				continue
			}
			if occ.Date.Before(minDate) {
				minDate = occ.Date
			}
			if occ.Date.After(maxDate) {
				maxDate = occ.Date
			}
		}
	}

	b.WriteString("# BitDevs Resources Report\n\n")
	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(b, "- **Total Unique Resources**: %d\n", len(result.Resources))
	fmt.Fprintf(b, "- **Total References**: %d\n", totalReferences)
	if haveDates {
		fmt.Fprintf(b, "- **Date Range**: %s to %s\n", minDate, maxDate)
	}
	fmt.Fprintf(b, "- **Unique Domains**: %d\n", len(domains))
	if len(result.Metadata.ExcludedDomains) > 0 {
		b.WriteString("- **Excluded Domains**:\n")
		excluded := make([]string, len(result.Metadata.ExcludedDomains))
		copy(excluded, result.Metadata.ExcludedDomains)
		sort.Strings(excluded)
		for _, d := range excluded {
			fmt.Fprintf(b, "  - %s\n", d)
		}
	}
	b.WriteString("\n")
}
