package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

// CategoryView writes the report grouped by each resource's most common
// category, then by domain. Domains contributing a single resource within a
// category pool into an "Other Resources" section.
func (g *Generator) CategoryView(result models.ScanResult, outputPath string) error {
	g.log.Info("generating category view", logger.String("path", outputPath))

	byCategory := make(map[string][]resourceEntry)
	for _, e := range buildEntries(result) {
		byCategory[e.category] = append(byCategory[e.category], e)
	}

	catRefs := make(map[string]int, len(byCategory))
	categories := make([]string, 0, len(byCategory))
	for cat, entries := range byCategory {
		categories = append(categories, cat)
		for _, e := range entries {
			catRefs[cat] += e.count
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if catRefs[categories[i]] != catRefs[categories[j]] {
			return catRefs[categories[i]] > catRefs[categories[j]]
		}
		return categories[i] < categories[j]
	})
	g.log.Debug("processing categories", logger.Int("count", len(categories)))

	var b strings.Builder
	writeMetadata(&b, result)
	b.WriteString("# Resources by Category\n\n")

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n\n", cat)

		byDomain := groupByDomain(byCategory[cat])
		domains := domainsByRefs(byDomain)

		grouped := false
		for _, domain := range domains {
			if len(byDomain[domain]) <= 1 {
				continue
			}
			grouped = true
			fmt.Fprintf(&b, "### %s\n\n", domain)
			for _, e := range sortByLatestDesc(byDomain[domain]) {
				fmt.Fprintf(&b, "- [%s](%s)%s\n",
					formatTitles(e.titles), e.url, formatReferenceCount(e.count))
			}
			b.WriteString("\n")
		}

		var singles []resourceEntry
		for _, domain := range domains {
			if len(byDomain[domain]) == 1 {
				singles = append(singles, byDomain[domain][0])
			}
		}
		if len(singles) > 0 {
			// The pooled heading only makes sense next to grouped sections.
			if grouped {
				b.WriteString("### Other Resources\n\n")
			}
			for _, e := range sortByLatestDesc(singles) {
				fmt.Fprintf(&b, "- [%s](%s)%s\n",
					formatTitles(e.titles), e.url, formatReferenceCount(e.count))
			}
			b.WriteString("\n")
		}
	}

	if err := g.store.SaveFile(outputPath, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write category view: %w", err)
	}
	g.log.Info("generated category view", logger.String("path", outputPath))
	return nil
}
