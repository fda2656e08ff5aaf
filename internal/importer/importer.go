package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/wrongbook/internal/domain"
	"github.com/conorfennell/wrongbook/internal/fingerprint"
	"github.com/conorfennell/wrongbook/internal/parser"
)

// Creator is the part of the entry store an import writes to.
type Creator interface {
	Entries() []domain.Entry
	Create(name, imagePath, answer string) (int, error)
}

// Result summarizes one import run.
type Result struct {
	Files      int
	Parsed     int
	Created    int
	Duplicates int
	Errors     []error
}

var extensions = map[string]bool{".txt": true, ".md": true}

// ImportDir walks dir for .txt and .md files, parses their entry blocks and
// creates every entry whose content is not already in the store. Relative
// image paths are resolved against the file that names them. Per-file and
// per-entry problems are collected in Result.Errors; only a failed walk is
// returned as an error.
func ImportDir(s Creator, dir string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting import", "dir", dir)

	var res Result
	seen := fingerprint.NewSet(s.Entries())

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !extensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		res.Files++
		entries, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}

		for i, entry := range entries {
			res.Parsed++
			if entry.ImagePath != "" && !filepath.IsAbs(entry.ImagePath) {
				entry.ImagePath = filepath.Join(filepath.Dir(path), entry.ImagePath)
			}
			if seen.Contains(entry) {
				logger.Debug("Duplicate entry, skipping", "file", path, "name", entry.Name)
				res.Duplicates++
				continue
			}
			index, createErr := s.Create(entry.Name, entry.ImagePath, entry.Answer)
			if createErr != nil {
				res.Errors = append(res.Errors, fmt.Errorf("%s block %d: %w", path, i+1, createErr))
				continue
			}
			seen.Add(entry)
			res.Created++
			logger.Debug("Entry imported", "file", path, "index", index, "name", entry.Name)
		}
		return nil
	})

	if walkErr != nil {
		logger.Error("Error walking directory", "dir", dir, "error", walkErr)
		return res, fmt.Errorf("failed to walk %s: %w", dir, walkErr)
	}

	logger.Info("Import complete",
		"dir", dir,
		"files", res.Files,
		"parsed", res.Parsed,
		"created", res.Created,
		"duplicates", res.Duplicates,
		"errors", len(res.Errors),
	)
	return res, nil
}
