package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefault(t *testing.T) {
	p := New("")
	ws, err := p.RootWords()
	if err != nil {
		t.Fatalf("RootWords: %v", err)
	}
	if len(ws) == 0 {
		t.Fatal("embedded list is empty")
	}
	for _, w := range ws {
		if w != strings.ToLower(w) || strings.TrimSpace(w) != w || w == "" {
			t.Errorf("unnormalized word %q", w)
		}
	}
	if p.Stats() != len(ws) {
		t.Errorf("Stats = %d, want %d", p.Stats(), len(ws))
	}
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	body := "# comment\nSilkworm\n\n  blackout  \nnot-a-word\nälpha\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ws, err := New(path).RootWords()
	if err != nil {
		t.Fatalf("RootWords: %v", err)
	}
	want := []string{"silkworm", "blackout", "älpha"}
	if strings.Join(ws, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", ws, want)
	}
}

func TestMissingFile(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "nope.txt"))
	if _, err := p.RootWords(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	// The failure is remembered, not retried.
	if _, err := p.RootWords(); err == nil {
		t.Error("second call succeeded")
	}
}

func TestRead(t *testing.T) {
	ws, err := Read(strings.NewReader("one\r\nTWO\nthree words\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ws, ",") != "one,two" {
		t.Errorf("Read = %v", ws)
	}
}
