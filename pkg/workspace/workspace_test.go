package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
)

func TestNew_CreatesDirectory(t *testing.T) {
	ws, err := New(logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Close()

	info, err := os.Stat(ws.Root())
	if err != nil {
		t.Fatalf("workspace root missing: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("workspace root %s is not a directory", ws.Root())
	}
	if ws.RunID() == "" {
		t.Error("RunID() is empty")
	}
}

func TestClose_RemovesDirectory(t *testing.T) {
	ws, err := New(logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Put something inside so removal has to recurse.
	if err := os.WriteFile(filepath.Join(ws.Root(), "marker"), []byte("x"), 0644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(ws.Root()); !os.IsNotExist(err) {
		t.Errorf("workspace root still exists after Close: %v", err)
	}
}

func TestRepoPath_DerivedFromURL(t *testing.T) {
	ws, err := New(logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Close()

	got := ws.RepoPath("https://github.com/BitDevsNYC/BitDevsNYC.github.io.git")
	if !strings.HasPrefix(got, ws.Root()) {
		t.Errorf("RepoPath() = %q, want path under %q", got, ws.Root())
	}
	if filepath.Base(got) != "BitDevsNYC.github.io" {
		t.Errorf("RepoPath() base = %q, want BitDevsNYC.github.io", filepath.Base(got))
	}
}
