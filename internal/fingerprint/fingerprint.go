package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/wrongbook/internal/domain"
)

// Normalize joins an entry's content after cleaning each part. Name and
// answer are lowercased; the image path keeps its case since file systems
// may care. The ID never takes part.
func Normalize(entry domain.Entry) string {
	clean := func(part string) string {
		p := strings.ReplaceAll(part, "\r\n", "\n")
		return strings.TrimSpace(p)
	}

	name := strings.ToLower(clean(entry.Name))
	image := clean(entry.ImagePath)
	answer := strings.ToLower(clean(entry.Answer))

	// Newline separators keep "ab"+"c" and "a"+"bc" apart.
	return strings.Join([]string{name, image, answer}, "\n")
}

// Of returns the SHA-256 of the normalized entry as a hex string.
func Of(entry domain.Entry) string {
	sum := sha256.Sum256([]byte(Normalize(entry)))
	return fmt.Sprintf("%x", sum)
}

// Set records which fingerprints have been seen.
type Set map[string]struct{}

// NewSet fingerprints every entry.
func NewSet(entries []domain.Entry) Set {
	set := make(Set, len(entries))
	for _, e := range entries {
		set.Add(e)
	}
	return set
}

// Add records entry and reports whether it was new.
func (s Set) Add(entry domain.Entry) bool {
	fp := Of(entry)
	if _, ok := s[fp]; ok {
		return false
	}
	s[fp] = struct{}{}
	return true
}

// Contains reports whether an entry with the same content was recorded.
func (s Set) Contains(entry domain.Entry) bool {
	_, ok := s[Of(entry)]
	return ok
}
