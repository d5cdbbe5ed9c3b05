// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging, per-client rate limiting).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, GET /game, POST /game/word.
//   - Daily endpoints: mounted under /daily.
//   - Admin endpoint: POST /admin/words (basic auth, bcrypt).
//
// Notes:
//   - The player's session ID travels in a signed JWT cookie (or bearer token).
//   - Every session mutation runs inside store.Update, which serializes it.
//   - Word rejections are normal 200 responses carrying the rejection kind
//     plus a title/message for display.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/daily"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/spell"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/store"
)

// Options configures a Server. Provider and Checker are required.
type Options struct {
	Provider   game.WordListProvider
	Daily      *daily.Provider // nil disables /daily
	Checker    game.SpellChecker
	Dictionary *spell.Store  // nil disables /admin/words
	Cache      *spell.Cached // purged after dictionary writes; may be nil

	SessionSecret     string
	SessionTTL        time.Duration
	AdminUser         string
	AdminPasswordHash string
	ClientOrigin      string
	RateLimitRPS      int
	RateLimitBurst    int
	Production        bool
}

// Server bundles router, session store and collaborators.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.SessionSecret == "" {
		opts.SessionSecret = "dev_secret_change_me"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.AdminUser == "" {
		opts.AdminUser = "admin"
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts, limiters: make(map[string]*rate.Limiter)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS
	s.r.Use(s.withSession)                   // resolve session id if present

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /game/new","GET /game","POST /game/word","/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	// --- game ---
	s.r.With(s.rateLimit).Post("/game/new", s.handleNewGame)
	s.r.Get("/game", s.handleState)
	s.r.With(s.rateLimit).Post("/game/word", s.handleWord)

	if opts.Daily != nil {
		s.mountDaily(s.r)
	}
	if opts.Dictionary != nil && opts.AdminPasswordHash != "" {
		s.mountAdmin(s.r)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// newGameReq is the body of POST /game/new.
type newGameReq struct {
	Root string `json:"root"` // optional fixed root word
}

// stateRes is the session view returned by game endpoints.
type stateRes struct {
	Token     string   `json:"token,omitempty"`
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"`
	Score     int      `json:"score"`
	Date      string   `json:"date,omitempty"`
}

func stateOf(res game.SubmitResult) stateRes {
	return stateRes{RootWord: res.RootWord, UsedWords: res.UsedWords, Score: res.Score}
}

// handleNewGame starts a session, or restarts the caller's existing one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.startOrRestart(w, r, s.opts.Provider, req.Root, "")
}

// startOrRestart is shared by /game/new and /daily/new.
func (s *Server) startOrRestart(w http.ResponseWriter, r *http.Request, p game.WordListProvider, root, date string) {
	if sid := sessionID(r); sid != "" {
		var snap game.SubmitResult
		err := s.store.Update(r.Context(), sid, func(g *game.Session) error {
			if root != "" {
				g.RestartWithRoot(root)
			} else if err := g.Restart(p); err != nil {
				return err
			}
			snap = g.Snapshot()
			return nil
		})
		switch {
		case err == nil:
			log.Info().Str("session", sid).Str("root", snap.RootWord).Msg("session restarted")
			res := stateOf(snap)
			res.Date = date
			writeJSON(w, http.StatusOK, res)
			return
		case errors.Is(err, game.ErrProviderUnavailable):
			providerFailed(w, err)
			return
		case !errors.Is(err, store.ErrNotFound):
			log.Error().Err(err).Str("session", sid).Msg("restart session")
			writeError(w, http.StatusInternalServerError, "restart_failed")
			return
		}
		// Unknown or evicted session: fall through and create a new one.
	}

	var g *game.Session
	if root != "" {
		g = game.NewWithRoot(root, s.opts.Checker)
	} else {
		var err error
		if g, err = game.Start(p, s.opts.Checker); err != nil {
			providerFailed(w, err)
			return
		}
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSession(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", g.ID).Str("root", g.RootWord).Msg("session started")

	res := stateOf(g.Snapshot())
	res.Token = tok
	res.Date = date
	writeJSON(w, http.StatusOK, res)
}

func providerFailed(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("word list provider unavailable")
	writeError(w, http.StatusInternalServerError, "provider_unavailable")
}

// handleState returns the caller's current session.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	var snap game.SubmitResult
	err := s.store.Update(r.Context(), sid, func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	writeJSON(w, http.StatusOK, stateOf(snap))
}

// wordReq is the body of POST /game/word.
type wordReq struct {
	Word string `json:"word"`
}

// wordRes is a SubmitResult plus display text for rejections.
type wordRes struct {
	game.SubmitResult
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleWord submits a word to the caller's session.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sid := sessionID(r)
	if sid == "" {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}

	var res game.SubmitResult
	err := s.store.Update(r.Context(), sid, func(g *game.Session) error {
		res = g.Submit(req.Word)
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no_session")
			return
		}
		log.Error().Err(err).Str("session", sid).Msg("submit word")
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	out := wordRes{SubmitResult: res}
	if res.Outcome == game.OutcomeRejected {
		out.Title, out.Message = Describe(res.Rejection, res.RootWord)
	}
	log.Debug().Str("session", sid).Str("word", res.Word).Str("outcome", string(res.Outcome)).
		Str("rejection", string(res.Rejection)).Int("score", res.Score).Msg("word submitted")
	writeJSON(w, http.StatusOK, out)
}

// handleDebugWords reports word list and session counts.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	out := map[string]int{"sessions": s.store.Len()}
	if st, ok := s.opts.Provider.(interface{ Stats() int }); ok {
		out["rootWords"] = st.Stats()
	}
	if s.opts.Dictionary != nil {
		if n, err := s.opts.Dictionary.Count(r.Context(), game.Language); err == nil {
			out["dictionary"] = n
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
