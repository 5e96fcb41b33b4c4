package directory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"508-235-6915 Roger Smith",
		"508-235-7829 Jane Smith",
		"",
		"508-704-1151",       // single token: skipped
		"   ",                // blank: skipped
		"48368 Carrier Short Code", // multi-word name
	}, "\n")

	d, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if len(d) != 3 {
		t.Fatalf("got %d entries, want 3", len(d))
	}
	if got := d["508-235-6915"]; got != "Roger Smith" {
		t.Errorf("entry = %q, want Roger Smith", got)
	}
	if got := d["48368"]; got != "Carrier Short Code" {
		t.Errorf("entry = %q, want Carrier Short Code", got)
	}
}

func TestReadCollapsesWhitespace(t *testing.T) {
	d, err := Read(strings.NewReader("508-235-6915\t Roger   Smith\n"))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if got := d["508-235-6915"]; got != "Roger Smith" {
		t.Errorf("entry = %q, want Roger Smith", got)
	}
}

func TestName(t *testing.T) {
	d := Directory{"508-235-6915": "Roger Smith"}

	if got := d.Name("508-235-6915"); got != "Roger Smith" {
		t.Errorf("Name = %q, want Roger Smith", got)
	}
	if got := d.Name("999-999-9999"); got != Placeholder {
		t.Errorf("Name of unknown number = %q, want %q", got, Placeholder)
	}
}

func TestNumbersSorted(t *testing.T) {
	d := Directory{
		"508-748-9880": "c",
		"480-786-7200": "a",
		"48368":        "b",
	}

	want := []string{"480-786-7200", "48368", "508-748-9880"}
	got := d.Numbers()
	if len(got) != len(want) {
		t.Fatalf("got %d numbers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Numbers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.dir")
	if err := os.WriteFile(path, []byte("508-235-6915 Roger Smith\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(d) != 1 {
		t.Errorf("got %d entries, want 1", len(d))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	d, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(d) != 0 {
		t.Errorf("got %d entries, want 0", len(d))
	}
	// Still usable for lookups.
	if got := d.Name("508-235-6915"); got != Placeholder {
		t.Errorf("Name = %q, want %q", got, Placeholder)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.dir")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
