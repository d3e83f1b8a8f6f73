package main

import (
	"net/http"
	"os"

	"quickdraw/internal/config"
	"quickdraw/internal/db"
	"quickdraw/internal/server"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	conn := openDatabase(cfg, logger)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg, logger)
	logger.Info().Str("addr", addr).Msg("quickdraw server listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// openDatabase connects the history archive. The server runs without it;
// games simply are not archived when the database is unreachable.
func openDatabase(cfg config.Config, logger zerolog.Logger) *gorm.DB {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Warn().Msg("DATABASE_URL not set, game history disabled")
		return nil
	}
	conn, err := db.Open()
	if err != nil {
		logger.Warn().Err(err).Msg("database unavailable, game history disabled")
		return nil
	}
	if err := db.Migrate(conn); err != nil {
		logger.Warn().Err(err).Msg("database migration failed, game history disabled")
		return nil
	}
	if err := db.Configure(conn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeSeconds, cfg.DBConnMaxIdleTimeSeconds); err != nil {
		logger.Warn().Err(err).Msg("failed to configure connection pool")
	}
	return conn
}
