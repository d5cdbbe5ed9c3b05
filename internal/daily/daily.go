// apps/go-server/internal/daily/daily.go
//
// Daily challenge root word selection.
// Every player gets the same root word for a given UTC date. The index is
// HMAC(salt, YYYY-MM-DD) mod len(words), so it cannot be guessed without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Provider narrows another provider's list to the word of the day.
type Provider struct {
	Source game.WordListProvider
	Salt   string
	Now    func() time.Time // defaults to time.Now
}

// NewProvider returns a daily Provider over src.
func NewProvider(src game.WordListProvider, salt string) *Provider {
	return &Provider{Source: src, Salt: salt}
}

// RootWords returns a single-element list holding today's root word,
// or an empty list when the source has none.
func (p *Provider) RootWords() ([]string, error) {
	word, _, err := p.Today()
	if err != nil {
		return nil, err
	}
	if word == "" {
		return []string{}, nil
	}
	return []string{word}, nil
}

// Today returns today's root word and date key.
func (p *Provider) Today() (word, date string, err error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	date = DateKey(now)
	list, err := p.Source.RootWords()
	if err != nil {
		return "", date, err
	}
	if len(list) == 0 {
		return "", date, nil
	}
	return list[WordIndex(now, p.Salt, len(list))], date, nil
}
