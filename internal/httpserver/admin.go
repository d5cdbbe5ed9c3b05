package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
)

// mountAdmin registers dictionary maintenance routes.
func (s *Server) mountAdmin(r chi.Router) {
	r.With(s.requireAdmin).Post("/admin/words", s.handleAddWords)
}

// requireAdmin enforces HTTP basic auth against the configured bcrypt hash.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pw, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.AdminUser)) != 1 ||
			bcrypt.CompareHashAndPassword([]byte(s.opts.AdminPasswordHash), []byte(pw)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="wordscramble"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// addWordsReq is the body of POST /admin/words.
type addWordsReq struct {
	Lang  string   `json:"lang"`
	Words []string `json:"words"`
}

// handleAddWords inserts words into the dictionary and drops cached answers.
func (s *Server) handleAddWords(w http.ResponseWriter, r *http.Request) {
	var req addWordsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Lang == "" {
		req.Lang = game.Language
	}
	added, err := s.opts.Dictionary.AddWords(r.Context(), req.Lang, req.Words)
	if err != nil {
		log.Error().Err(err).Msg("add dictionary words")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if s.opts.Cache != nil {
		s.opts.Cache.Purge()
	}
	log.Info().Str("lang", req.Lang).Int("added", added).Msg("dictionary updated")
	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}
