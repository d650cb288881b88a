package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

// DomainView writes the report grouped by domain, heaviest domains first.
func (g *Generator) DomainView(result models.ScanResult, outputPath string) error {
	g.log.Info("generating domain view", logger.String("path", outputPath))

	byDomain := groupByDomain(buildEntries(result))

	type domainStats struct {
		totalRefs int
		resources int
	}
	stats := make(map[string]domainStats, len(byDomain))
	domains := make([]string, 0, len(byDomain))
	for domain, entries := range byDomain {
		domains = append(domains, domain)
		st := domainStats{resources: len(entries)}
		for _, e := range entries {
			st.totalRefs += e.count
		}
		stats[domain] = st
	}
	sort.Slice(domains, func(i, j int) bool {
		si, sj := stats[domains[i]], stats[domains[j]]
		if si.totalRefs != sj.totalRefs {
			return si.totalRefs > sj.totalRefs
		}
		if si.resources != sj.resources {
			return si.resources > sj.resources
		}
		return domains[i] < domains[j]
	})
	g.log.Debug("processing domains", logger.Int("count", len(domains)))

	var b strings.Builder
	writeMetadata(&b, result)
	b.WriteString("# Resources by Domain\n\n")

	for _, domain := range domains {
		st := stats[domain]
		fmt.Fprintf(&b, "## %s (%d resources, %d total references)\n\n",
			domain, st.resources, st.totalRefs)
		for _, e := range sortByLatestDesc(byDomain[domain]) {
			fmt.Fprintf(&b, "- [%s](%s)%s (Category: %s)\n",
				formatTitles(e.titles), e.url, formatReferenceCount(e.count), e.category)
		}
		b.WriteString("\n")
	}

	if err := g.store.SaveFile(outputPath, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write domain view: %w", err)
	}
	g.log.Info("generated domain view", logger.String("path", outputPath))
	return nil
}
