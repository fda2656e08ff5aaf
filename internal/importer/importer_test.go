package importer

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/wrongbook/internal/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestImportDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), `N: Q1
I: /scans/q1.png
A: 1
---
N: Q2
I: q2.png
A: 2
---
N: Bad
I: bad.png
`)
	writeFile(t, filepath.Join(dir, "sub", "b.md"), "N: q1\nI: /scans/q1.png\nA: 1\n")
	writeFile(t, filepath.Join(dir, "notes.csv"), "N: ignored\nI: x.png\nA: x\n")

	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"), store.WithLogger(logger))
	if err != nil {
		t.Fatalf("store.Open() returned an unexpected error: %v", err)
	}

	res, err := ImportDir(s, dir, logger)
	if err != nil {
		t.Fatalf("ImportDir() returned an unexpected error: %v", err)
	}

	if res.Files != 2 {
		t.Errorf("Expected 2 files, but got %d", res.Files)
	}
	if res.Parsed != 4 {
		t.Errorf("Expected 4 parsed entries, but got %d", res.Parsed)
	}
	if res.Created != 2 {
		t.Errorf("Expected 2 created entries, but got %d", res.Created)
	}
	if res.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, but got %d", res.Duplicates)
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], store.ErrValidation) {
		t.Errorf("Expected a single validation error, but got %v", res.Errors)
	}

	q2, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get(1) returned an unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "q2.png"); q2.ImagePath != want {
		t.Errorf("Expected relative image path to resolve to %s, but got %s", want, q2.ImagePath)
	}

	again, err := ImportDir(s, dir, logger)
	if err != nil {
		t.Fatalf("second ImportDir() returned an unexpected error: %v", err)
	}
	if again.Created != 0 || again.Duplicates != 3 {
		t.Errorf("Expected re-import to create 0 and skip 3, but got created=%d duplicates=%d", again.Created, again.Duplicates)
	}
	if s.Len() != 2 {
		t.Errorf("Expected store to hold 2 entries, but got %d", s.Len())
	}
}

func TestImportDirMissing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"), store.WithLogger(logger))
	if err != nil {
		t.Fatalf("store.Open() returned an unexpected error: %v", err)
	}

	if _, err := ImportDir(s, filepath.Join(t.TempDir(), "nope"), logger); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
