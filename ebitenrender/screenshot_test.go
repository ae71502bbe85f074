package ebitenrender

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-load", "after-load"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	g := NewGame(testViewport(), nil)
	g.ScreenshotDir = dir

	// Nothing queued: no directory is created.
	g.flushScreenshots(nil)
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("flush with empty queue touched %s", dir)
	}

	g.Screenshot("a")
	g.Screenshot("b")
	if len(g.shots) != 2 || g.shots[0] != "a" || g.shots[1] != "b" {
		t.Errorf("queue = %v, want [a b]", g.shots)
	}
}
