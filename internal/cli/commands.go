package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/conorfennell/wrongbook/internal/domain"
	"github.com/conorfennell/wrongbook/internal/export"
	"github.com/conorfennell/wrongbook/internal/importer"
	"github.com/spf13/pflag"
)

func addFlags(fs *pflag.FlagSet) {
	fs.StringP("name", "n", "", "Name shown in listings")
	fs.StringP("image", "i", "", "Path to the question image")
	fs.StringP("answer", "a", "", "Answer text, or - to read it from stdin")
}

func deleteFlags(fs *pflag.FlagSet) {
	fs.String("id", "", "Delete the entry with this ID instead of by index")
}

func (a *App) add(e *env, fs *pflag.FlagSet) error {
	name, _ := fs.GetString("name")
	image, _ := fs.GetString("image")
	answer, _ := fs.GetString("answer")

	if answer == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		answer = string(data)
	}
	answer = strings.TrimSpace(answer)
	name = strings.TrimSpace(name)

	if image == "" || answer == "" {
		return usageError("an image and an answer are both required")
	}
	if name == "" {
		return usageError("a name is required to save the entry")
	}

	index, err := e.store.Create(name, image, answer)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Saved: %s (#%d)\n", name, index)
	return nil
}

func (a *App) list(e *env, fs *pflag.FlagSet) error {
	items := e.store.List()
	if len(items) == 0 {
		fmt.Fprintln(a.stdout, "No entries added yet.")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(a.stdout, "%3d  %s\n", item.Index, item.Name)
	}
	return nil
}

func (a *App) show(e *env, fs *pflag.FlagSet) error {
	index, err := indexArg(fs)
	if err != nil {
		return err
	}
	entry, err := e.store.Get(index)
	if err != nil {
		return err
	}

	total := e.store.Len()
	fmt.Fprintf(a.stdout, "Entry %d of %d: %s\n", index+1, total, entry.Name)
	fmt.Fprintf(a.stdout, "ID:     %s\n", entry.ID)
	fmt.Fprintf(a.stdout, "Image:  %s%s\n", entry.ImagePath, imageNote(entry))
	fmt.Fprintf(a.stdout, "Answer:\n%s\n", entry.Answer)

	var nav []string
	if index > 0 {
		nav = append(nav, fmt.Sprintf("previous: show %d", index-1))
	}
	if index < total-1 {
		nav = append(nav, fmt.Sprintf("next: show %d", index+1))
	}
	if len(nav) > 0 {
		fmt.Fprintf(a.stdout, "(%s)\n", strings.Join(nav, ", "))
	}
	return nil
}

func (a *App) delete(e *env, fs *pflag.FlagSet) error {
	id, _ := fs.GetString("id")
	if id != "" {
		if fs.NArg() > 0 {
			return usageError("give either an index or --id, not both")
		}
		entry, _, err := e.store.GetByID(id)
		if err != nil {
			return err
		}
		if err := e.store.DeleteByID(id); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Deleted: %s\n", entry.Name)
		return nil
	}

	index, err := indexArg(fs)
	if err != nil {
		return err
	}
	entry, err := e.store.Get(index)
	if err != nil {
		return err
	}
	if err := e.store.Delete(index); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted: %s\n", entry.Name)
	return nil
}

func (a *App) importDir(e *env, fs *pflag.FlagSet) error {
	if fs.NArg() != 1 {
		return usageError("expected exactly one directory")
	}
	res, err := importer.ImportDir(e.store, fs.Arg(0), e.logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Imported %d entries from %d files (%d duplicates skipped, %d errors).\n",
		res.Created, res.Files, res.Duplicates, len(res.Errors))
	if len(res.Errors) > 0 {
		fmt.Fprintln(a.stdout, "\nErrors:")
		for _, err := range res.Errors {
			fmt.Fprintf(a.stdout, "- %s\n", err)
		}
	}
	return nil
}

func (a *App) export(e *env, fs *pflag.FlagSet) error {
	if fs.NArg() != 1 {
		return usageError("expected exactly one output file")
	}
	entries := e.store.Entries()
	if err := export.ToSQLite(fs.Arg(0), entries); err != nil {
		return err
	}
	e.logger.Info("Export complete", "path", fs.Arg(0), "entries", len(entries))
	fmt.Fprintf(a.stdout, "Exported %d entries to %s\n", len(entries), fs.Arg(0))
	return nil
}

func indexArg(fs *pflag.FlagSet) (int, error) {
	if fs.NArg() != 1 {
		return 0, usageError("expected exactly one index")
	}
	index, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return 0, usageError("index %q is not a number", fs.Arg(0))
	}
	return index, nil
}

// imageNote flags an image that cannot be read. A missing image is only a
// display problem; the entry itself stays valid.
func imageNote(entry domain.Entry) string {
	if _, err := os.Stat(entry.ImagePath); err != nil {
		return " (image unavailable)"
	}
	return ""
}
