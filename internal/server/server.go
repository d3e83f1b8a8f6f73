package server

import (
	"net/http"
	"sync"
	"time"

	"quickdraw/internal/config"
	"quickdraw/internal/game"
	"quickdraw/internal/history"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Server hosts pass-and-play game sessions for the device UI. Each session
// wraps one game.Machine; all mutations of a session go through the store's
// update closure, which keeps the single-writer model even though requests
// and round timers arrive from different goroutines.
type Server struct {
	store    *Store
	history  *history.Store
	cfg      config.Config
	log      zerolog.Logger
	prompts  game.PromptSource
	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func New(conn *gorm.DB, cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{
		store:   NewStore(),
		history: history.NewStore(conn, logger),
		cfg:     cfg,
		log:     logger,
		prompts: game.NewCatalogSource(),
		timers:  make(map[string]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /api/history", s.handleHistoryList)
	mux.HandleFunc("DELETE /api/history", s.handleHistoryClear)
	mux.HandleFunc("DELETE /api/history/", s.handleHistoryDelete)
	mux.HandleFunc("GET /api/prompts/categories", s.handlePromptCategories)
	return mux
}

func (s *Server) gameSettings() game.Settings {
	return game.Settings{
		RoundDuration: time.Duration(s.cfg.RoundDurationSeconds) * time.Second,
		RoundsPerGame: s.cfg.RoundsPerGame,
	}
}
