package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAssertGoldenReadsTestdata(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("testdata", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join("testdata", "view.golden"), []byte("hello\nworld"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	AssertGolden(t, "view.golden", "hello\nworld")
}

func TestAssertGoldenUpdates(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("UPDATE_GOLDEN", "1")
	AssertGolden(t, "fresh.golden", "new output")

	data, err := os.ReadFile(filepath.Join(dir, "testdata", "fresh.golden"))
	if err != nil || string(data) != "new output" {
		t.Fatalf("expected golden to be written, got %q (%v)", data, err)
	}
}
