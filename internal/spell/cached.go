package spell

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
)

// DefaultCacheSize is used when NewCached gets a non-positive size.
const DefaultCacheSize = 4096

// Cached memoizes another checker's answers in an LRU cache.
type Cached struct {
	next  game.SpellChecker
	cache *lru.Cache[string, bool]
}

// NewCached wraps next with a cache of up to size entries.
func NewCached(next game.SpellChecker, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("new lru: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

// IsRealWord implements game.SpellChecker.
func (c *Cached) IsRealWord(word, lang string) bool {
	key := Base(lang) + "|" + word
	if ok, hit := c.cache.Get(key); hit {
		return ok
	}
	ok := c.next.IsRealWord(word, lang)
	c.cache.Add(key, ok)
	return ok
}

// Purge drops every cached answer. Call it after the dictionary changes.
func (c *Cached) Purge() { c.cache.Purge() }

// Len returns the number of cached answers.
func (c *Cached) Len() int { return c.cache.Len() }
