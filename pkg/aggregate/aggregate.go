// Package aggregate collects link sightings into per-URL resource records.
package aggregate

import (
	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

// Aggregator owns the URL → Resource map for one scan run. Occurrences are
// only ever appended; nothing is removed or rewritten once recorded.
type Aggregator struct {
	resources map[string]*models.Resource
	log       logger.Logger
}

// New returns an empty Aggregator.
func New(log logger.Logger) *Aggregator {
	return &Aggregator{
		resources: make(map[string]*models.Resource),
		log:       log,
	}
}

// AddOccurrence records one sighting of a URL. A resource is created on the
// first sighting; repeated titles collapse into the resource's title set.
func (a *Aggregator) AddOccurrence(url string, date models.Date, source, category, title string) {
	res, ok := a.resources[url]
	if !ok {
		res = models.NewResource(url)
		a.resources[url] = res
	}
	res.AddOccurrence(date, source, category, title)
	a.log.Debug("added occurrence",
		logger.String("url", url), logger.String("source", source))
}

// Len reports how many unique URLs have been seen.
func (a *Aggregator) Len() int {
	return len(a.resources)
}

// Snapshot packages the aggregation into a ScanResult together with the run
// metadata. Occurrence lists keep their insertion (scan) order; JSON
// marshalling of the resource map sorts by URL.
func (a *Aggregator) Snapshot(startDate *models.Date, excludedDomains []string) models.ScanResult {
	resources := make(map[string]*models.Resource, len(a.resources))
	for url, res := range a.resources {
		resources[url] = res
	}
	// The artifact shape is a list; a nil slice would marshal as null.
	if excludedDomains == nil {
		excludedDomains = []string{}
	}
	return models.ScanResult{
		Metadata: models.ScanMetadata{
			TotalUniqueURLs: len(a.resources),
			StartDate:       startDate,
			ExcludedDomains: excludedDomains,
		},
		Resources: resources,
	}
}
