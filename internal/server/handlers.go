package server

import (
	"errors"
	"net/http"

	"quickdraw/internal/game"
)

type createGameRequest struct {
	PlayerName string `json:"player_name" validate:"required,name"`
}

type joinRequest struct {
	Name string `json:"name" validate:"required,name"`
}

type settingsRequest struct {
	Rounds int `json:"rounds" validate:"min=1,max=10"`
}

type guessRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Guess    string `json:"guess" validate:"required,guess"`
}

var (
	errGameStarted    = errors.New("game already started")
	errGameOver       = errors.New("all rounds played")
	errNeedPlayers    = errors.New("at least two players required")
	errRoundActive    = errors.New("round still in progress")
	errNoActiveRound  = errors.New("no active round")
	errDrawerGuess    = errors.New("the drawer cannot guess")
	errAlreadyGuessed = errors.New("player already guessed this round")
	errPlayerNotFound = errors.New("player not found")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, errSessionNotFound), errors.Is(err, errPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusConflict
	}
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid player name")
		return
	}
	name := normalizeText(req.PlayerName)
	machine := game.NewMachine(s.prompts, game.WithSettings(s.gameSettings()))
	g := machine.CreateGame(name)
	s.store.Put(g.ID, machine)
	s.log.Info().Str("game_id", g.ID).Str("player", name).Msg("game created")
	writeJSON(w, http.StatusCreated, snapshot(g))
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		if action != "" {
			http.NotFound(w, r)
			return
		}
		s.handleGetGame(w, r, gameID)
		return
	}
	switch action {
	case "players":
		s.handleJoinGame(w, r, gameID)
	case "settings":
		s.handleSettings(w, r, gameID)
	case "start":
		s.handleStartGame(w, r, gameID)
	case "rounds":
		s.handleStartRound(w, r, gameID)
	case "guesses":
		s.handleGuesses(w, r, gameID)
	case "end-round":
		s.handleEndRound(w, r, gameID)
	case "reset":
		s.handleReset(w, r, gameID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, gameID string) {
	g, ok := s.store.Snapshot(gameID)
	if !ok || g == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(g))
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, gameID string) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid player name")
		return
	}
	name := normalizeText(req.Name)
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil {
			return errSessionNotFound
		}
		if g.State != game.StateLobby {
			return errGameStarted
		}
		machine.AddPlayer(name)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.log.Info().Str("game_id", gameID).Str("player", name).Msg("player joined")
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request, gameID string) {
	var req settingsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "rounds out of range")
		return
	}
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil {
			return errSessionNotFound
		}
		if g.State != game.StateLobby {
			return errGameStarted
		}
		machine.SetRoundsPerGame(req.Rounds)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, gameID string) {
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil {
			return errSessionNotFound
		}
		if g.State != game.StateLobby {
			return errGameStarted
		}
		if len(g.Players) < 2 {
			return errNeedPlayers
		}
		machine.StartGame()
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.scheduleRoundTimer(gameID, updated.CurrentRound.Number, updated.Settings.RoundDuration)
	s.log.Info().Str("game_id", gameID).Int("players", len(updated.Players)).Msg("game started")
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request, gameID string) {
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil {
			return errSessionNotFound
		}
		if g.State == game.StateLobby {
			return errNeedPlayers
		}
		if g.State == game.StateFinished {
			return errGameOver
		}
		if g.CurrentRound != nil && !g.CurrentRound.Ended() {
			return errRoundActive
		}
		machine.StartRound()
		if machine.Game().State != game.StateDrawing {
			return errGameOver
		}
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.scheduleRoundTimer(gameID, updated.CurrentRound.Number, updated.Settings.RoundDuration)
	s.log.Info().Str("game_id", gameID).Int("round", updated.CurrentRound.Number).Msg("round started")
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleGuesses(w http.ResponseWriter, r *http.Request, gameID string) {
	var req guessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := requestValidator().Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid guess")
		return
	}
	text := normalizeText(req.Guess)
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil || g.CurrentRound == nil {
			return errNoActiveRound
		}
		if g.State != game.StateDrawing && g.State != game.StateGuessing {
			return errNoActiveRound
		}
		if _, ok := g.Player(req.PlayerID); !ok {
			return errPlayerNotFound
		}
		if req.PlayerID == g.CurrentRound.DrawerID {
			return errDrawerGuess
		}
		for _, guess := range g.CurrentRound.Guesses {
			if guess.PlayerID == req.PlayerID {
				return errAlreadyGuessed
			}
		}
		machine.SubmitGuess(req.PlayerID, text)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request, gameID string) {
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil || g.CurrentRound == nil || g.CurrentRound.Ended() {
			return errNoActiveRound
		}
		machine.EndRound()
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if updated.State == game.StateFinished {
		s.log.Info().Str("game_id", gameID).Msg("game finished")
		s.finishGame(updated)
	} else {
		s.cancelRoundTimer(gameID)
	}
	writeJSON(w, http.StatusOK, snapshot(updated))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, gameID string) {
	_, err := s.store.Update(gameID, func(machine *game.Machine) error {
		machine.Reset()
		return nil
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.cancelRoundTimer(gameID)
	s.store.Remove(gameID)
	s.log.Info().Str("game_id", gameID).Msg("game reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries := s.history.LoadAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"games": entries})
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseHistoryPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.history.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete history entry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.history.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handlePromptCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": game.CatalogCategories()})
}
