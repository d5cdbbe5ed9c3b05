package spell

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Store is a dictionary kept in the SQLite `dictionary` table.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// IsRealWord implements game.SpellChecker. Lookup failures are logged and
// reported as unknown words.
func (s *Store) IsRealWord(word, lang string) bool {
	base := Base(lang)
	return allKnown(word, func(t string) bool {
		var one int
		err := s.db.QueryRow(`SELECT 1 FROM dictionary WHERE word=? AND lang=?`, t, base).Scan(&one)
		switch {
		case err == nil:
			return true
		case err == sql.ErrNoRows:
			return false
		default:
			log.Error().Err(err).Str("word", t).Str("lang", base).Msg("dictionary lookup")
			return false
		}
	})
}

// AddWords inserts words under lang in a single transaction and returns
// how many were new. Existing entries are ignored.
func (s *Store) AddWords(ctx context.Context, lang string, words []string) (int, error) {
	base := Base(lang)
	clean := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		return w, w != ""
	}))
	if len(clean) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary(word, lang) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range clean {
		res, err := stmt.ExecContext(ctx, w, base)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// Count returns the number of words stored for lang.
func (s *Store) Count(ctx context.Context, lang string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM dictionary WHERE lang=?`, Base(lang)).Scan(&n)
	return n, err
}

// SeedIfEmpty loads words when the dictionary for lang has no entries yet.
func (s *Store) SeedIfEmpty(ctx context.Context, lang string, words []string) (int, error) {
	n, err := s.Count(ctx, lang)
	if err != nil {
		return 0, fmt.Errorf("count dictionary: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	return s.AddWords(ctx, lang, words)
}
