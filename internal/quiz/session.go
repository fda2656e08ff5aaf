// Package quiz runs a randomized self-test over a snapshot of entries.
//
// A session walks each sampled entry through two steps, Showing and
// Revealed, driven by a single Flip action, and ends in Finished after the
// last entry's answer has been revealed and flipped past.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/conorfennell/wrongbook/internal/domain"
)

// DefaultSize is the number of entries sampled when no size is given.
const DefaultSize = 10

var (
	// ErrEmptyCollection is returned by Start when there is nothing to quiz.
	ErrEmptyCollection = errors.New("no entries to quiz")
	// ErrSessionFinished is returned by actions taken after the last entry.
	ErrSessionFinished = errors.New("quiz session finished")
)

// State is the position of a session within its per-entry cycle.
type State int

const (
	Showing State = iota
	Revealed
	Finished
)

func (s State) String() string {
	switch s {
	case Showing:
		return "showing"
	case Revealed:
		return "revealed"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rand is the randomness a session draws its sample from. *rand.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Session is one pass over a random sample of entries.
type Session struct {
	sample []domain.Entry
	cursor int
	state  State
}

// Start draws min(size, len(entries)) distinct entries uniformly at random
// and positions the session on the first one. A size of zero or less means
// DefaultSize; a nil rng uses the process-wide generator.
func Start(entries []domain.Entry, size int, rng Rand) (*Session, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCollection
	}
	if size <= 0 {
		size = DefaultSize
	}
	if rng == nil {
		rng = globalRand{}
	}

	return &Session{
		sample: sample(entries, size, rng),
		state:  Showing,
	}, nil
}

// sample runs a partial Fisher-Yates shuffle over a copy of entries, so the
// caller's slice is never reordered.
func sample(entries []domain.Entry, size int, rng Rand) []domain.Entry {
	pool := make([]domain.Entry, len(entries))
	copy(pool, entries)

	k := min(size, len(pool))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

// Current returns the entry under the cursor and whether its answer is shown.
func (s *Session) Current() (domain.Entry, bool, error) {
	if s.state == Finished {
		return domain.Entry{}, false, ErrSessionFinished
	}
	return s.sample[s.cursor], s.state == Revealed, nil
}

// Flip reveals the current answer, or, once revealed, moves to the next
// entry. Flipping past the last revealed entry finishes the session.
func (s *Session) Flip() error {
	switch s.state {
	case Showing:
		s.state = Revealed
	case Revealed:
		if s.cursor == len(s.sample)-1 {
			s.state = Finished
			return nil
		}
		s.cursor++
		s.state = Showing
	case Finished:
		return ErrSessionFinished
	}
	return nil
}

// Position reports progress as (m, n) for an "m of n" indicator.
func (s *Session) Position() (int, int) {
	if s.state == Finished {
		return len(s.sample), len(s.sample)
	}
	return s.cursor + 1, len(s.sample)
}

// State returns where the session is in its cycle.
func (s *Session) State() State {
	return s.state
}

// Finished reports whether every sampled entry has been flipped through.
func (s *Session) Finished() bool {
	return s.state == Finished
}

// Len returns the number of sampled entries.
func (s *Session) Len() int {
	return len(s.sample)
}
