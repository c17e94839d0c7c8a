package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestWriteFileAtomic_New(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubric.rbc")

	if err := WriteFileAtomic(path, []byte(`{"Rubric": []}`), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != `{"Rubric": []}` {
		t.Errorf("content = %q", data)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry in dir, got %d", len(entries))
	}
}

func TestWriteFileAtomic_Replace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubric.xlsx")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := WriteFileAtomic(path, []byte("fresh"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "fresh" {
		t.Errorf("content = %q, want %q", data, "fresh")
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "rubric.rbc")
	err := WriteFileAtomic(path, []byte("x"), 0644)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.HasPrefix(err.Error(), "cannot create temp file: ") {
		t.Errorf("error = %q", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("error %v does not wrap a *fs.PathError", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("output should not exist after failure")
	}
}
