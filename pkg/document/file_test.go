package document

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/chious/readmequest/pkg/errors"
)

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, "new\ncontent"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got != "new\ncontent" {
		t.Errorf("ReadFile() = %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestWriteFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NEW.md")
	if err := WriteFile(path, "x"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if got, _ := ReadFile(path); got != "x" {
		t.Errorf("ReadFile() = %q, want %q", got, "x")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "README.md"), "x")
	if !apperrors.Is(err, apperrors.ErrCodeWriteFailed) {
		t.Errorf("WriteFile() error = %v, want WRITE_FAILED", err)
	}
}
