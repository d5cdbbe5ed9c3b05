// apps/go-server/internal/game/types.go
//
// Core type definitions for the Word Scramble engine.
// Defines:
//   - Outcome / Rejection: result kinds of a single word submission.
//   - SubmitResult: what Submit hands back to the caller for rendering.
//   - Session: state for a single play-through.
//   - WordListProvider / SpellChecker: collaborators the engine consumes.

package game

import (
	"errors"
	"time"
)

// Outcome is the coarse result of a submission.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeIgnored  Outcome = "ignored" // blank input, nothing submitted
)

// Rejection names the first validation check a submission failed.
type Rejection string

const (
	RejectDuplicateWord Rejection = "duplicate_word"
	RejectSameAsRoot    Rejection = "same_as_root"
	RejectTooShort      Rejection = "too_short"
	RejectNotSpellable  Rejection = "not_spellable"
	RejectNotRecognized Rejection = "not_recognized"
)

// ErrProviderUnavailable is returned when no root word source can be reached.
// The game cannot run without one, so callers treat it as fatal.
var ErrProviderUnavailable = errors.New("word list provider unavailable")

// WordListProvider supplies candidate root words for a new session.
type WordListProvider interface {
	RootWords() ([]string, error)
}

// SpellChecker reports whether word is a recognized dictionary word in lang.
type SpellChecker interface {
	IsRealWord(word, lang string) bool
}

// SubmitResult is the outcome of Session.Submit.
// UsedWords is a copy; mutating it does not affect the session.
type SubmitResult struct {
	Outcome   Outcome   `json:"outcome"`
	Rejection Rejection `json:"rejection,omitempty"`
	Word      string    `json:"word,omitempty"`
	RootWord  string    `json:"rootWord"`
	UsedWords []string  `json:"usedWords"`
	Score     int       `json:"score"`
}

// Accepted reports whether the submission was added to the session.
func (r SubmitResult) Accepted() bool { return r.Outcome == OutcomeAccepted }

// Session holds the state of a single Word Scramble play-through.
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	ID        string    // Opaque identifier used by the session store.
	RootWord  string    // Pool of letters (lowercase, non-empty).
	UsedWords []string  // Accepted guesses, most recent first.
	Score     int       // Sum of rune lengths of UsedWords.
	StartedAt time.Time // When the current root word was chosen.

	checker SpellChecker
}
