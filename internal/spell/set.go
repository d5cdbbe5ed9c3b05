package spell

import (
	"strings"
	"sync"
)

// Set is an in-memory dictionary keyed by base language.
type Set struct {
	mu    sync.RWMutex
	words map[string]map[string]struct{}
}

// NewSet returns a Set holding words under lang.
func NewSet(lang string, words []string) *Set {
	s := &Set{words: make(map[string]map[string]struct{})}
	s.Add(lang, words...)
	return s
}

// Add inserts words under lang.
func (s *Set) Add(lang string, words ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := Base(lang)
	m, ok := s.words[base]
	if !ok {
		m = make(map[string]struct{}, len(words))
		s.words[base] = m
	}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m[w] = struct{}{}
		}
	}
}

// IsRealWord implements game.SpellChecker.
func (s *Set) IsRealWord(word, lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.words[Base(lang)]
	if m == nil {
		return false
	}
	return allKnown(word, func(t string) bool {
		_, ok := m[t]
		return ok
	})
}

// Len returns the number of words stored for lang.
func (s *Set) Len(lang string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words[Base(lang)])
}
