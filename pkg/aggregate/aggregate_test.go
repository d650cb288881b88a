package aggregate

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
)

func day(d int) models.Date {
	return models.NewDate(2023, time.June, d)
}

func TestAddOccurrence_CountMatchesCalls(t *testing.T) {
	agg := New(logger.NewNop())

	agg.AddOccurrence("https://example.com/a", day(1), "src1", "Topics", "first")
	agg.AddOccurrence("https://example.com/a", day(2), "src2", "Topics", "second")
	agg.AddOccurrence("https://example.com/a", day(3), "src3", "News", "first")

	result := agg.Snapshot(nil, nil)
	res := result.Resources["https://example.com/a"]
	if res == nil {
		t.Fatal("resource not found in snapshot")
	}
	if res.Count != 3 {
		t.Errorf("Count = %d, want 3", res.Count)
	}
	if len(res.Occurrences) != 3 {
		t.Errorf("len(Occurrences) = %d, want 3", len(res.Occurrences))
	}
}

func TestAddOccurrence_TitlesAreASet(t *testing.T) {
	agg := New(logger.NewNop())

	agg.AddOccurrence("https://example.com/a", day(1), "src", "Topics", "title one")
	agg.AddOccurrence("https://example.com/a", day(2), "src", "Topics", "title two")
	agg.AddOccurrence("https://example.com/a", day(3), "src", "Topics", "title one")

	res := agg.Snapshot(nil, nil).Resources["https://example.com/a"]
	want := []string{"title one", "title two"}
	if len(res.Titles) != len(want) {
		t.Fatalf("Titles = %v, want %v", res.Titles, want)
	}
	for i := range want {
		if res.Titles[i] != want[i] {
			t.Errorf("Titles[%d] = %q, want %q", i, res.Titles[i], want[i])
		}
	}
}

func TestAddOccurrence_OneResourcePerURL(t *testing.T) {
	agg := New(logger.NewNop())

	agg.AddOccurrence("https://example.com/a", day(1), "src", "", "a")
	agg.AddOccurrence("https://example.com/b", day(1), "src", "", "b")
	agg.AddOccurrence("https://example.com/a", day(2), "src", "", "a")

	if got := agg.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestSnapshot_OccurrencesKeepInsertionOrder(t *testing.T) {
	agg := New(logger.NewNop())

	agg.AddOccurrence("https://example.com/a", day(3), "later", "", "t")
	agg.AddOccurrence("https://example.com/a", day(1), "earlier", "", "t")

	occs := agg.Snapshot(nil, nil).Resources["https://example.com/a"].Occurrences
	if occs[0].Source != "later" || occs[1].Source != "earlier" {
		t.Errorf("occurrences reordered: %+v", occs)
	}
}

func TestSnapshot_Metadata(t *testing.T) {
	agg := New(logger.NewNop())
	agg.AddOccurrence("https://example.com/a", day(1), "src", "", "t")

	start := day(1)
	excluded := []string{"meetup.com"}
	result := agg.Snapshot(&start, excluded)

	if result.Metadata.TotalUniqueURLs != 1 {
		t.Errorf("TotalUniqueURLs = %d, want 1", result.Metadata.TotalUniqueURLs)
	}
	if result.Metadata.StartDate == nil || result.Metadata.StartDate.String() != "2023-06-01" {
		t.Errorf("StartDate = %v, want 2023-06-01", result.Metadata.StartDate)
	}
	if len(result.Metadata.ExcludedDomains) != 1 || result.Metadata.ExcludedDomains[0] != "meetup.com" {
		t.Errorf("ExcludedDomains = %v", result.Metadata.ExcludedDomains)
	}
}

func TestSnapshot_NoExclusionsMarshalsAsEmptyList(t *testing.T) {
	agg := New(logger.NewNop())
	agg.AddOccurrence("https://example.com/a", day(1), "src", "", "t")

	result := agg.Snapshot(nil, nil)
	if result.Metadata.ExcludedDomains == nil {
		t.Fatal("ExcludedDomains is nil, want empty slice")
	}

	data, err := json.Marshal(result.Metadata)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"excluded_domains":[]`) {
		t.Errorf("metadata JSON = %s, want excluded_domains as an empty list", data)
	}
}
