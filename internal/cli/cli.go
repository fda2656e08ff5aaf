// Package cli is the command-line front end. It only turns arguments and
// keystrokes into store and quiz calls and prints the results.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/conorfennell/wrongbook/internal/config"
	"github.com/conorfennell/wrongbook/internal/quiz"
	"github.com/conorfennell/wrongbook/internal/store"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	args    string
	summary string
	flags   func(fs *pflag.FlagSet)
	run     func(a *App, e *env, fs *pflag.FlagSet) error
}

var commands = []command{
	{name: "add", summary: "Save a question image with its answer", flags: addFlags, run: (*App).add},
	{name: "list", summary: "List saved entries", run: (*App).list},
	{name: "show", args: "<index>", summary: "Show one entry", run: (*App).show},
	{name: "delete", args: "<index>", summary: "Delete an entry by index or --id", flags: deleteFlags, run: (*App).delete},
	{name: "quiz", summary: "Self-test on a random sample of entries", run: (*App).quiz},
	{name: "import", args: "<dir>", summary: "Import entries from .txt/.md files", run: (*App).importDir},
	{name: "export", args: "<file.db>", summary: "Export entries to a SQLite file", run: (*App).export},
}

// App runs commands against the given streams.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	rng    quiz.Rand
}

// New returns an App reading from stdin and writing to stdout and stderr.
func New(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Run is shorthand for New(stdin, stdout, stderr).Run(args).
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return New(stdin, stdout, stderr).Run(args)
}

// env is what every command gets after configuration is resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

// Run executes the command named by args[0] and returns a process exit code.
func (a *App) Run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage(a.stdout)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(a.stderr, "wrongbook: unknown command %q\n\n", args[0])
		a.usage(a.stderr)
		return 2
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: wrongbook %s [flags] %s\n\n%s\n\nFlags:\n", cmd.name, cmd.args, cmd.summary)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	e, err := a.setup(fs)
	if err != nil {
		fmt.Fprintf(a.stderr, "wrongbook: %v\n", err)
		return 1
	}

	if err := cmd.run(a, e, fs); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(a.stderr, "wrongbook: %v\n", err)
			fs.Usage()
			return 2
		}
		e.logger.Debug("Command failed", "command", cmd.name, "error", err)
		fmt.Fprintf(a.stderr, "wrongbook: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) setup(fs *pflag.FlagSet) (*env, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log, a.stderr)

	s, err := store.Open(cfg.DataFile,
		store.WithLogger(logger),
		store.WithCorruptPolicy(store.CorruptPolicy(cfg.Store.OnCorrupt)),
	)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, store: s}, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (a *App) usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wrongbook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wrongbook <command> --help' for command flags.")
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, strings.TrimSpace(fmt.Sprintf(format, args...)))
}
