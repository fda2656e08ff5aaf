package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/wrongbook/internal/quiz"
	"github.com/spf13/pflag"
)

func (a *App) quiz(e *env, fs *pflag.FlagSet) error {
	session, err := quiz.Start(e.store.Entries(), e.cfg.Quiz.Size, a.rng)
	if errors.Is(err, quiz.ErrEmptyCollection) {
		fmt.Fprintln(a.stdout, "No entries added yet. Use 'wrongbook add' first.")
		return err
	}
	if err != nil {
		return err
	}
	e.logger.Debug("Quiz started", "entries", session.Len())

	scanner := bufio.NewScanner(a.stdin)
	for !session.Finished() {
		if err := a.render(session); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(a.stdout, "Quiz exited.")
			return nil
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			fmt.Fprintln(a.stdout, "Quiz exited.")
			return nil
		}
		if err := session.Flip(); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.stdout, "Quiz complete!")
	return nil
}

func (a *App) render(session *quiz.Session) error {
	entry, revealed, err := session.Current()
	if err != nil {
		return err
	}
	m, n := session.Position()

	if !revealed {
		fmt.Fprintf(a.stdout, "\nQuiz: %d/%d\n", m, n)
		fmt.Fprintf(a.stdout, "Question: %s\n", entry.Name)
		fmt.Fprintf(a.stdout, "Image: %s%s\n", entry.ImagePath, imageNote(entry))
		fmt.Fprint(a.stdout, "[Enter] show answer, [q] quit: ")
		return nil
	}

	fmt.Fprintf(a.stdout, "Answer:\n%s\n", entry.Answer)
	if m == n {
		fmt.Fprint(a.stdout, "[Enter] finish, [q] quit: ")
	} else {
		fmt.Fprint(a.stdout, "[Enter] next question, [q] quit: ")
	}
	return nil
}
