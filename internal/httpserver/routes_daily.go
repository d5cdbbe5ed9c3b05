// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - GET  /daily     → today's date key and root word
//   - POST /daily/new → start (or restart) the caller's session on today's root word
//
// The daily root word is deterministic per UTC date (see internal/daily).

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date     string `json:"date"`
	RootWord string `json:"rootWord"`
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyToday)
		r.With(s.rateLimit).Post("/new", s.handleDailyNew)
	})
}

// handleDailyToday reports today's root word.
func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	word, date, err := s.opts.Daily.Today()
	if err != nil {
		providerFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{Date: date, RootWord: word})
}

// handleDailyNew starts a session whose root word is today's.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	_, date, err := s.opts.Daily.Today()
	if err != nil {
		providerFailed(w, err)
		return
	}
	log.Debug().Str("date", date).Msg("daily session requested")
	s.startOrRestart(w, r, s.opts.Daily, "", date)
}
