package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-01-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2023-01-15" {
		t.Errorf("String() = %q, want 2023-01-15", d.String())
	}

	for _, bad := range []string{"2023-13-45", "2023-1-15", "topic", "15-01-2023"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	orig := NewDate(2023, time.June, 1)
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2023-06-01"` {
		t.Errorf("Marshal() = %s, want \"2023-06-01\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(orig.Time) {
		t.Errorf("round trip changed date: %v != %v", back, orig)
	}
}

func TestDate_MonthKey(t *testing.T) {
	if got := NewDate(2023, time.June, 15).MonthKey(); got != "2023-06" {
		t.Errorf("MonthKey() = %q, want 2023-06", got)
	}
}

func TestResource_AddOccurrenceInvariants(t *testing.T) {
	r := NewResource("https://example.com/a")
	r.AddOccurrence(NewDate(2023, time.May, 1), "src1", "Topics", "first title")
	r.AddOccurrence(NewDate(2023, time.June, 1), "src2", "Topics", "first title")
	r.AddOccurrence(NewDate(2023, time.April, 1), "src3", "News", "second title")

	if r.Count != 3 {
		t.Errorf("Count = %d, want 3", r.Count)
	}
	if len(r.Occurrences) != r.Count {
		t.Errorf("len(Occurrences) = %d, Count = %d; must match", len(r.Occurrences), r.Count)
	}
	if len(r.Titles) != 2 {
		t.Errorf("Titles = %v, want 2 distinct titles", r.Titles)
	}
	if got := r.LatestDate().String(); got != "2023-06-01" {
		t.Errorf("LatestDate() = %q, want 2023-06-01", got)
	}
}

func TestScanResult_SortedURLs(t *testing.T) {
	result := ScanResult{Resources: map[string]*Resource{
		"https://b.example.com": NewResource("https://b.example.com"),
		"https://a.example.com": NewResource("https://a.example.com"),
	}}
	urls := result.SortedURLs()
	if len(urls) != 2 || urls[0] != "https://a.example.com" || urls[1] != "https://b.example.com" {
		t.Errorf("SortedURLs() = %v, want ascending order", urls)
	}
}

func TestScanResult_JSONNullStartDate(t *testing.T) {
	result := ScanResult{
		Metadata:  ScanMetadata{TotalUniqueURLs: 0, StartDate: nil},
		Resources: map[string]*Resource{},
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back ScanResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Metadata.StartDate != nil {
		t.Errorf("StartDate = %v, want nil", back.Metadata.StartDate)
	}
}
