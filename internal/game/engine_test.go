package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/samber/lo"
)

// stubChecker recognizes a fixed set of words.
type stubChecker map[string]bool

func (c stubChecker) IsRealWord(word, lang string) bool {
	return lang == Language && c[word]
}

func newStub(words ...string) stubChecker {
	c := stubChecker{}
	for _, w := range words {
		c[w] = true
	}
	return c
}

type staticProvider struct {
	words []string
	err   error
	calls int
}

func (p *staticProvider) RootWords() ([]string, error) {
	p.calls++
	return p.words, p.err
}

var dictionary = newStub("silk", "worm", "milk", "work", "slow", "owl", "oil", "at", "boob", "mil")

func TestStartPicksFromProvider(t *testing.T) {
	p := &staticProvider{words: []string{"Silkworm", "", "  "}}
	for i := 0; i < 10; i++ {
		s, err := Start(p, dictionary)
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if s.RootWord != "silkworm" {
			t.Errorf("RootWord = %q, want silkworm", s.RootWord)
		}
		if len(s.UsedWords) != 0 || s.Score != 0 {
			t.Errorf("fresh session has words=%v score=%d", s.UsedWords, s.Score)
		}
		if s.ID == "" {
			t.Error("session ID is empty")
		}
	}
}

func TestStartRandomCoversList(t *testing.T) {
	p := &staticProvider{words: []string{"alphabet", "blackout"}}
	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		s, err := Start(p, dictionary)
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		seen[s.RootWord] = true
	}
	for _, w := range p.words {
		if !seen[w] {
			t.Errorf("root %q never chosen", w)
		}
	}
}

func TestStartFallsBackOnEmptyList(t *testing.T) {
	s, err := Start(&staticProvider{}, dictionary)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.RootWord != DefaultRootWord {
		t.Errorf("RootWord = %q, want %q", s.RootWord, DefaultRootWord)
	}
}

func TestStartProviderUnavailable(t *testing.T) {
	_, err := Start(&staticProvider{err: errors.New("start.txt missing")}, dictionary)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if !strings.Contains(err.Error(), "start.txt missing") {
		t.Errorf("err %q does not carry the cause", err)
	}
	if _, err := Start(nil, dictionary); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("nil provider: err = %v", err)
	}
}

func TestSubmitOrderAndKinds(t *testing.T) {
	cases := []struct {
		name  string
		root  string
		prior []string
		input string
		want  Rejection
	}{
		{"duplicate", "silkworm", []string{"silk"}, "silk", RejectDuplicateWord},
		{"duplicate before root check", "silkworm", []string{"silkworm"}, "silkworm", RejectDuplicateWord},
		{"same as root", "silkworm", nil, "silkworm", RejectSameAsRoot},
		{"root beats length", "at", nil, "at", RejectSameAsRoot},
		{"too short", "silkworm", nil, "at", RejectTooShort},
		{"too short unspellable", "silkworm", nil, "zz", RejectTooShort},
		{"missing letter", "silkworm", nil, "milky", RejectNotSpellable},
		{"too many copies", "book", nil, "boob", RejectNotSpellable},
		{"not recognized", "silkworm", nil, "lirk", RejectNotRecognized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewWithRoot(tc.root, dictionary)
			for _, w := range tc.prior {
				s.UsedWords = append(s.UsedWords, w)
				s.Score += len(w)
			}
			before := append([]string{}, s.UsedWords...)
			score := s.Score

			res := s.Submit(tc.input)
			if res.Outcome != OutcomeRejected || res.Rejection != tc.want {
				t.Fatalf("Submit(%q) = %s/%s, want rejected/%s", tc.input, res.Outcome, res.Rejection, tc.want)
			}
			if s.Score != score || !lo.Every(before, s.UsedWords) || len(before) != len(s.UsedWords) {
				t.Errorf("session mutated on rejection: words=%v score=%d", s.UsedWords, s.Score)
			}
		})
	}
}

func TestSubmitAccepts(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	res := s.Submit("  SILK \n")
	if !res.Accepted() {
		t.Fatalf("Submit(silk) = %s/%s", res.Outcome, res.Rejection)
	}
	if res.Word != "silk" || res.Score != 4 || s.Score != 4 {
		t.Errorf("got word=%q score=%d/%d, want silk 4", res.Word, res.Score, s.Score)
	}

	res = s.Submit("worm")
	if !res.Accepted() {
		t.Fatalf("Submit(worm) = %s/%s", res.Outcome, res.Rejection)
	}
	if got := strings.Join(s.UsedWords, ","); got != "worm,silk" {
		t.Errorf("UsedWords = %s, want most recent first", got)
	}
	if s.Score != 8 {
		t.Errorf("Score = %d, want 8", s.Score)
	}
}

func TestSubmitDuplicateLeavesState(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	if !s.Submit("milk").Accepted() {
		t.Fatal("first milk rejected")
	}
	res := s.Submit("Milk")
	if res.Rejection != RejectDuplicateWord {
		t.Fatalf("second milk = %s, want duplicate", res.Rejection)
	}
	if len(s.UsedWords) != 1 || s.Score != 4 {
		t.Errorf("state changed: words=%v score=%d", s.UsedWords, s.Score)
	}
}

func TestSubmitBlankIgnored(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	for _, in := range []string{"", "   ", "\t\n"} {
		res := s.Submit(in)
		if res.Outcome != OutcomeIgnored || res.Rejection != "" {
			t.Errorf("Submit(%q) = %s/%s, want ignored", in, res.Outcome, res.Rejection)
		}
	}
	if len(s.UsedWords) != 0 || s.Score != 0 {
		t.Errorf("blank input changed state")
	}
}

func TestSubmitWithoutChecker(t *testing.T) {
	s := NewWithRoot("silkworm", nil)
	if res := s.Submit("silk"); res.Rejection != RejectNotRecognized {
		t.Errorf("nil checker: got %s", res.Rejection)
	}
}

func TestResultIsCopy(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	res := s.Submit("silk")
	res.UsedWords[0] = "hacked"
	if s.UsedWords[0] != "silk" {
		t.Error("result aliases session state")
	}
}

func TestInvariantsHoldAfterMixedSubmissions(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	for _, in := range []string{"silk", "at", "worm", "silk", "milky", "silkworm", "owl", "oil", "", "lirk", "slow", "mil"} {
		s.Submit(in)
	}
	if want := lo.SumBy(s.UsedWords, func(w string) int { return len(w) }); s.Score != want {
		t.Errorf("Score = %d, want %d", s.Score, want)
	}
	if len(lo.Uniq(s.UsedWords)) != len(s.UsedWords) {
		t.Errorf("duplicates in %v", s.UsedWords)
	}
	for _, w := range s.UsedWords {
		if !IsSpellable(w, s.RootWord) || len(w) < MinWordLength || w == s.RootWord || !dictionary[w] {
			t.Errorf("invalid word %q accepted", w)
		}
	}
}

func TestRestart(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	s.Submit("silk")
	s.Submit("worm")

	if err := s.Restart(&staticProvider{words: []string{"blackout"}}); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.RootWord != "blackout" || len(s.UsedWords) != 0 || s.Score != 0 {
		t.Errorf("after restart: root=%q words=%v score=%d", s.RootWord, s.UsedWords, s.Score)
	}
}

func TestRestartFailureKeepsState(t *testing.T) {
	s := NewWithRoot("silkworm", dictionary)
	s.Submit("silk")

	err := s.Restart(&staticProvider{err: errors.New("gone")})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if s.RootWord != "silkworm" || s.Score != 4 || len(s.UsedWords) != 1 {
		t.Errorf("state changed on failed restart")
	}
}

func TestIsSpellable(t *testing.T) {
	cases := []struct {
		word, root string
		want       bool
	}{
		{"silk", "silkworm", true},
		{"worms", "silkworm", true},
		{"boob", "book", false},
		{"boo", "book", true},
		{"kook", "book", false},
		{"", "book", true},
		{"café", "éfac", true},
		{"cafe", "éfac", false},
	}
	for _, tc := range cases {
		if got := IsSpellable(tc.word, tc.root); got != tc.want {
			t.Errorf("IsSpellable(%q, %q) = %v, want %v", tc.word, tc.root, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  ÉCOLE\t"); got != "école" {
		t.Errorf("Normalize = %q", got)
	}
	if got := NewWithRoot("", dictionary).RootWord; got != DefaultRootWord {
		t.Errorf("empty root = %q", got)
	}
}
