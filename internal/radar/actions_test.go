package radar

import "testing"

func TestShouldWriteDetailed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   bool
	}{
		{"fresh scan always writes", "", "bitdevs_resources.json", true},
		{"input at a different path rewrites", "old.json", "bitdevs_resources.json", true},
		{"input reused as output skips the write", "bitdevs_resources.json", "bitdevs_resources.json", false},
	}
	for _, tt := range tests {
		if got := shouldWriteDetailed(tt.input, tt.output); got != tt.want {
			t.Errorf("%s: shouldWriteDetailed(%q, %q) = %v, want %v",
				tt.name, tt.input, tt.output, got, tt.want)
		}
	}
}
