package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/db"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/spell"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/words"
)

func TestEnvInt(t *testing.T) {
	t.Setenv("WS_TEST_INT", "42")
	if got := envInt("WS_TEST_INT", 7); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	t.Setenv("WS_TEST_INT", "nope")
	if got := envInt("WS_TEST_INT", 7); got != 7 {
		t.Errorf("envInt fallback = %d", got)
	}
	if got := getEnv("WS_TEST_UNSET", "def"); got != "def" {
		t.Errorf("getEnv = %q", got)
	}
}

// The embedded dictionary must make every root word playable.
func TestEmbeddedListsPlayable(t *testing.T) {
	t.Setenv("DICTIONARY_FILE", "")
	d, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	dict := spell.NewStore(d)
	if err := seedDictionary(dict); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n, _ := dict.Count(context.Background(), "en"); n == 0 {
		t.Fatal("dictionary empty after seed")
	}

	roots, err := words.New("").RootWords()
	if err != nil {
		t.Fatal(err)
	}
	for _, root := range roots {
		s := game.NewWithRoot(root, dict)
		if !dict.IsRealWord(root, game.Language) {
			t.Errorf("root %q missing from dictionary", root)
		}
		if s.RootWord != root {
			t.Errorf("root %q normalized to %q", root, s.RootWord)
		}
	}

	s := game.NewWithRoot("silkworm", dict)
	if res := s.Submit("silk"); !res.Accepted() {
		t.Errorf("silk on silkworm: %s", res.Rejection)
	}
}
