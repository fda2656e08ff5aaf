package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/conorfennell/wrongbook/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CorruptPolicy decides what Open does when the data file cannot be parsed.
type CorruptPolicy string

const (
	// CorruptFail refuses to open the store.
	CorruptFail CorruptPolicy = "fail"
	// CorruptReset moves the unreadable file aside and starts empty.
	CorruptReset CorruptPolicy = "reset"
)

// Store owns the entry collection and keeps the data file in sync with it.
// Positions are not stable across deletions; IDs are.
type Store struct {
	path      string
	entries   []domain.Entry
	validate  *validator.Validate
	logger    *slog.Logger
	onCorrupt CorruptPolicy
	newID     func() string
	now       func() time.Time
}

// Item is one line of a listing.
type Item struct {
	Index int
	ID    string
	Name  string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCorruptPolicy sets how Open reacts to an unparseable data file.
func WithCorruptPolicy(policy CorruptPolicy) Option {
	return func(s *Store) {
		s.onCorrupt = policy
	}
}

// Open loads the data file at path. A missing file yields an empty store.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:      path,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    slog.Default(),
		onCorrupt: CorruptFail,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	entries, err := s.readFile()
	switch {
	case err == nil:
	case errors.Is(err, ErrCorruptState) && s.onCorrupt == CorruptReset:
		backup := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return fmt.Errorf("failed to preserve corrupt state file %s: %w", s.path, renameErr)
		}
		s.logger.Warn("Data file is corrupt, starting with an empty collection",
			"path", s.path,
			"backup", backup,
			"error", err,
		)
		entries = nil
	default:
		return err
	}

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = s.newID()
		}
	}
	s.entries = entries
	s.logger.Debug("Data file loaded", "path", s.path, "entries", len(entries))
	return nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Create validates and appends a new entry, rewrites the data file, and
// returns the entry's position. If the rewrite fails the entry is dropped
// again so memory matches disk.
func (s *Store) Create(name, imagePath, answer string) (int, error) {
	entry := domain.Entry{
		ID:        s.newID(),
		Name:      name,
		ImagePath: imagePath,
		Answer:    answer,
	}
	if err := s.validate.Struct(entry); err != nil {
		return -1, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.entries = append(s.entries, entry)
	if err := s.save(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return -1, err
	}

	index := len(s.entries) - 1
	s.logger.Debug("Entry created", "index", index, "id", entry.ID, "name", entry.Name)
	return index, nil
}

// List returns every entry's position and name in insertion order.
func (s *Store) List() []Item {
	items := make([]Item, len(s.entries))
	for i, e := range s.entries {
		items[i] = Item{Index: i, ID: e.ID, Name: e.Name}
	}
	return items
}

// Entries returns a snapshot of the collection. Callers may keep it across
// later mutations of the store.
func (s *Store) Entries() []domain.Entry {
	return slices.Clone(s.entries)
}

// Get returns the entry at index.
func (s *Store) Get(index int) (domain.Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return domain.Entry{}, indexError(index, len(s.entries))
	}
	return s.entries[index], nil
}

// GetByID returns the entry with the given ID along with its current position.
func (s *Store) GetByID(id string) (domain.Entry, int, error) {
	index := s.indexOf(id)
	if index < 0 {
		return domain.Entry{}, -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.entries[index], index, nil
}

// Delete removes the entry at index, shifting later entries down by one,
// and rewrites the data file. On a failed rewrite the entry is restored.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.entries) {
		return indexError(index, len(s.entries))
	}

	prev := s.entries
	removed := prev[index]
	next := make([]domain.Entry, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)

	s.entries = next
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}

	s.logger.Debug("Entry deleted", "index", index, "id", removed.ID, "name", removed.Name)
	return nil
}

// DeleteByID removes the entry with the given ID.
func (s *Store) DeleteByID(id string) error {
	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Delete(index)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e domain.Entry) bool {
		return e.ID == id
	})
}
