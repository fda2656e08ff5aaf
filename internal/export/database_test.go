package export

import (
	"path/filepath"
	"testing"

	"github.com/conorfennell/wrongbook/internal/domain"
)

func TestToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	first := []domain.Entry{
		{ID: "a", Name: "Q1", ImagePath: "a.png", Answer: "42"},
		{ID: "b", Name: "Q2", ImagePath: "b.png", Answer: "multi\nline"},
		{ID: "c", Name: "", ImagePath: "c.png", Answer: "unnamed"},
	}

	if err := ToSQLite(path, first); err != nil {
		t.Fatalf("ToSQLite() returned an unexpected error: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	got, err := db.Entries()
	db.Close()
	if err != nil {
		t.Fatalf("Entries() returned an unexpected error: %v", err)
	}
	if len(got) != len(first) {
		t.Fatalf("Expected %d entries, but got %d", len(first), len(got))
	}
	for i := range first {
		if got[i] != first[i] {
			t.Errorf("Entry %d: expected %+v, but got %+v", i, first[i], got[i])
		}
	}

	t.Run("re-export replaces rows", func(t *testing.T) {
		second := first[1:2]
		if err := ToSQLite(path, second); err != nil {
			t.Fatalf("ToSQLite() returned an unexpected error: %v", err)
		}
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open() returned an unexpected error: %v", err)
		}
		defer db.Close()
		got, err := db.Entries()
		if err != nil {
			t.Fatalf("Entries() returned an unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != second[0] {
			t.Errorf("Expected only %+v, but got %+v", second[0], got)
		}
	})
}

func TestToSQLiteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	if err := ToSQLite(path, nil); err != nil {
		t.Fatalf("ToSQLite() returned an unexpected error: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	defer db.Close()
	got, err := db.Entries()
	if err != nil {
		t.Fatalf("Entries() returned an unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no entries, but got %d", len(got))
	}
}
