// apps/go-server/internal/game/engine.go
//
// Core game engine for a single Word Scramble session.
// Responsibilities:
//   - Start sessions from a WordListProvider (random root word, empty list, zero score).
//   - Validate submissions in a fixed order: originality, novelty, length,
//     spellability, realness. The first failing check names the rejection.
//   - Apply accepted words: prepend to UsedWords and add the word length to Score.
//
// Notes:
//   - Rejections are values, not errors. Only a missing word source is an error.
//   - Nothing is mutated until every check has passed.
package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultRootWord is used when the provider yields no usable words.
	DefaultRootWord = "silkworm"
	// MinWordLength is the shortest accepted guess, in letters.
	MinWordLength = 3
	// Language is the tag passed to the spell checker.
	Language = "en"
)

// Start creates a new session with a root word chosen uniformly at random
// from the provider. It fails only if the provider itself cannot be reached.
func Start(p WordListProvider, checker SpellChecker) (*Session, error) {
	root, err := pickRoot(p)
	if err != nil {
		return nil, err
	}
	return NewWithRoot(root, checker), nil
}

// NewWithRoot creates a session with a fixed root word.
// An empty root falls back to DefaultRootWord.
func NewWithRoot(root string, checker SpellChecker) *Session {
	root = Normalize(root)
	if root == "" {
		root = DefaultRootWord
	}
	return &Session{
		ID:        uuid.NewString(),
		RootWord:  root,
		UsedWords: []string{},
		StartedAt: time.Now().UTC(),
		checker:   checker,
	}
}

// Restart replaces the session's root word and clears its words and score.
// The new root is chosen before any field changes, so on error the session
// is left exactly as it was.
func (s *Session) Restart(p WordListProvider) error {
	root, err := pickRoot(p)
	if err != nil {
		return err
	}
	s.reset(root)
	return nil
}

// RestartWithRoot is Restart with a fixed root word.
func (s *Session) RestartWithRoot(root string) {
	root = Normalize(root)
	if root == "" {
		root = DefaultRootWord
	}
	s.reset(root)
}

func (s *Session) reset(root string) {
	s.RootWord = root
	s.UsedWords = []string{}
	s.Score = 0
	s.StartedAt = time.Now().UTC()
}

// Submit validates raw player input and, if every check passes, records it.
//
// Validation order:
//  1. blank input           → ignored, no rejection
//  2. already used          → RejectDuplicateWord
//  3. equal to root         → RejectSameAsRoot
//  4. fewer than 3 letters  → RejectTooShort
//  5. not from root letters → RejectNotSpellable
//  6. unknown to checker    → RejectNotRecognized
func (s *Session) Submit(raw string) SubmitResult {
	word := Normalize(raw)
	if word == "" {
		return s.result(OutcomeIgnored, "", "")
	}
	if rej, ok := s.validate(word); !ok {
		return s.result(OutcomeRejected, rej, word)
	}

	s.UsedWords = append([]string{word}, s.UsedWords...)
	s.Score += utf8.RuneCountInString(word)
	return s.result(OutcomeAccepted, "", word)
}

// validate runs the checks cheapest first. It never mutates the session.
func (s *Session) validate(word string) (Rejection, bool) {
	switch {
	case !IsOriginal(word, s.UsedWords):
		return RejectDuplicateWord, false
	case !IsNovel(word, s.RootWord):
		return RejectSameAsRoot, false
	case !IsLongEnough(word):
		return RejectTooShort, false
	case !IsSpellable(word, s.RootWord):
		return RejectNotSpellable, false
	case !s.isReal(word):
		return RejectNotRecognized, false
	}
	return "", true
}

func (s *Session) isReal(word string) bool {
	if s.checker == nil {
		return false
	}
	return s.checker.IsRealWord(word, Language)
}

// Snapshot returns the current state without a submission attached.
func (s *Session) Snapshot() SubmitResult {
	return s.result("", "", "")
}

func (s *Session) result(o Outcome, rej Rejection, word string) SubmitResult {
	return SubmitResult{
		Outcome:   o,
		Rejection: rej,
		Word:      word,
		RootWord:  s.RootWord,
		UsedWords: append([]string{}, s.UsedWords...),
		Score:     s.Score,
	}
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(cases.Lower(language.English).String(s))
}

// IsOriginal reports whether word has not been accepted before.
func IsOriginal(word string, used []string) bool {
	return !lo.Contains(used, word)
}

// IsNovel reports whether word differs from the root word.
func IsNovel(word, root string) bool {
	return word != root
}

// IsLongEnough reports whether word has at least MinWordLength letters.
func IsLongEnough(word string) bool {
	return utf8.RuneCountInString(word) >= MinWordLength
}

// IsSpellable reports whether word can be formed from root's letters,
// using each letter of root at most once.
//
// Root letters are counted once; each letter of word then consumes one
// unit from that count and the check fails on the first letter that has
// nothing left.
func IsSpellable(word, root string) bool {
	counts := make(map[rune]int, len(root))
	for _, r := range root {
		counts[r]++
	}
	for _, r := range word {
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

// pickRoot asks p for candidates and returns one at random.
func pickRoot(p WordListProvider) (string, error) {
	if p == nil {
		return "", ErrProviderUnavailable
	}
	list, err := p.RootWords()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	candidates := lo.Filter(lo.Map(list, func(w string, _ int) string {
		return Normalize(w)
	}), func(w string, _ int) bool {
		return w != ""
	})
	if len(candidates) == 0 {
		return DefaultRootWord, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return candidates[0], nil
	}
	return candidates[n.Int64()], nil
}
