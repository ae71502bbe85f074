package canopy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeDefaults(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeDefaults(t, `
font_size = 24
font_family = "Inter"
stroke_color = "#333"
`)
	got, err := LoadDefaults(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Defaults{
		FontSize:    24,
		FontFamily:  "Inter",
		FontStyle:   "normal",
		StrokeColor: "#333",
		StrokeWidth: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultsUnknownKeysWarn(t *testing.T) {
	buf := captureLog(t)
	path := writeDefaults(t, "font_size = 12\nline_height = 3\n")
	if _, err := LoadDefaults(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "line_height") {
		t.Errorf("expected warning naming the unknown key, got: %s", buf.String())
	}
}

func TestLoadDefaultsErrors(t *testing.T) {
	if _, err := LoadDefaults(writeDefaults(t, `stroke_color = "nope"`)); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad color err = %v, want ErrInvalidColor", err)
	}
	if _, err := LoadDefaults(writeDefaults(t, `font_size = "big"`)); err == nil {
		t.Error("mistyped value should fail")
	}
	if _, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestSetDefaultsAffectsGetters(t *testing.T) {
	defer SetDefaults(DefaultDefaults())
	SetDefaults(Defaults{FontFamily: "Mono", StrokeColor: "red"})

	txt := NewText("x")
	if txt.Attributes().FontFamily() != "Mono" {
		t.Errorf("FontFamily = %q", txt.Attributes().FontFamily())
	}
	if txt.Attributes().FontSize() != 48 {
		t.Error("zero field should fall back to the built-in value")
	}

	rec := &recorder{}
	NewLine(0, 0, 1, 1).Draw(rec, 1)
	if !rec.has("StrokeColor red") {
		t.Errorf("line should stroke with default color: %v", rec.calls)
	}
}
