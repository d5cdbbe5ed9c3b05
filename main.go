package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/apps/go-server/assets"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/daily"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/db"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/httpserver"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/spell"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/store"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Without root words there is nothing to play.
	provider := words.New(os.Getenv("WORDS_START_FILE"))
	if _, err := provider.RootWords(); err != nil {
		log.Fatal().Err(err).Str("source", provider.Source()).Msg("failed to load root words")
	}

	sqlDB, err := db.OpenAndMigrate(getEnv("DB_PATH", "./data/wordscramble.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dictionary database")
	}
	defer sqlDB.Close()

	dict := spell.NewStore(sqlDB)
	if err := seedDictionary(dict); err != nil {
		log.Fatal().Err(err).Msg("failed to seed dictionary")
	}
	checker, err := spell.NewCached(dict, envInt("SPELL_CACHE_SIZE", spell.DefaultCacheSize))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build spell cache")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, httpserver.Options{
		Provider:          provider,
		Daily:             daily.NewProvider(provider, getEnv("DAILY_SALT", "local_dev_salt")),
		Checker:           checker,
		Dictionary:        dict,
		Cache:             checker,
		SessionSecret:     getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionTTL:        time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RateLimitRPS:      envInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    envInt("RATE_LIMIT_BURST", 10),
		Production:        os.Getenv("APP_ENV") == "production",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweepSessions(ctx, mem, time.Duration(envInt("SESSION_IDLE_MINUTES", 60))*time.Minute)

	port := getEnv("PORT", "5175")
	hs := &http.Server{Addr: ":" + port, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", port).Int("rootWords", provider.Stats()).Msg("starting go-server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// seedDictionary fills an empty dictionary from DICTIONARY_FILE or the embedded list.
func seedDictionary(dict *spell.Store) error {
	var (
		list []string
		err  error
	)
	if path := os.Getenv("DICTIONARY_FILE"); path != "" {
		list, err = words.ReadFile(path)
	} else {
		list, err = assets.DictionaryWords()
	}
	if err != nil {
		return err
	}
	n, err := dict.SeedIfEmpty(context.Background(), game.Language, words.Clean(list))
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("words", n).Msg("dictionary seeded")
	}
	return nil
}

// sweepSessions evicts idle sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, st store.Store, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	t := time.NewTicker(maxIdle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(maxIdle); n > 0 {
				log.Info().Int("removed", n).Int("live", st.Len()).Msg("idle sessions swept")
			}
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric env value")
	}
	return def
}
