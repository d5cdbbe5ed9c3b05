// apps/go-server/internal/words/words.go
//
// Root word list provider for the game engine.
//
// Responsibilities:
//   - Load the candidate root words from an environment-provided file or
//     fall back to the embedded assets/start.txt.
//   - Implement game.WordListProvider (RootWords).
//   - Read generic newline-separated word files (also used to seed the dictionary).
//
// Word files:
//   - One word per line, UTF-8.
//   - Blank lines and lines starting with "#" are ignored.
//   - Words are trimmed and lowercased; entries with non-letters are dropped.
//
// Initialization is lazy and runs once per Provider (sync.Once).

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/apps/go-server/assets"
)

// Provider supplies root words from a file or the embedded default list.
type Provider struct {
	path string

	once  sync.Once
	words []string
	err   error
}

// New returns a Provider reading path, or the embedded list when path is "".
func New(path string) *Provider {
	return &Provider{path: path}
}

// RootWords returns the loaded root words, loading them on first use.
// A configured file that cannot be read is an error; the caller treats it
// as the word source being unavailable.
func (p *Provider) RootWords() ([]string, error) {
	p.once.Do(p.load)
	return p.words, p.err
}

// Stats returns the number of loaded root words.
func (p *Provider) Stats() int {
	ws, _ := p.RootWords()
	return len(ws)
}

// Source describes where the words come from, for logs.
func (p *Provider) Source() string {
	if p.path == "" {
		return "embedded:start.txt"
	}
	return p.path
}

func (p *Provider) load() {
	if p.path == "" {
		list, err := assets.StartWords()
		if err != nil {
			p.err = fmt.Errorf("read embedded start words: %w", err)
			return
		}
		p.words = Clean(list)
	} else {
		list, err := ReadFile(p.path)
		if err != nil {
			p.err = err
			return
		}
		p.words = list
	}
	log.Debug().Str("source", p.Source()).Int("count", len(p.words)).Msg("root words loaded")
}

// ReadFile loads one word per line from path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses newline-separated words from r.
func Read(r io.Reader) ([]string, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan word list: %w", err)
	}
	return Clean(raw), nil
}

// Clean trims and lowercases each entry and drops blanks, comments and
// anything that is not purely letters.
func Clean(lines []string) []string {
	lower := cases.Lower(language.English)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(lower.String(line))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s consists only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
