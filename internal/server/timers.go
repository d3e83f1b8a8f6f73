package server

import (
	"context"
	"errors"
	"time"

	"quickdraw/internal/game"
)

// scheduleRoundTimer arms the auto end-of-round timer for one round. A timer
// already armed for the game is replaced, so restarting a round never leaves
// a stale timer behind.
func (s *Server) scheduleRoundTimer(gameID string, roundNumber int, duration time.Duration) {
	if duration <= 0 {
		s.cancelRoundTimer(gameID)
		return
	}
	s.timersMu.Lock()
	if existing, ok := s.timers[gameID]; ok {
		existing.Stop()
	}
	timer := time.AfterFunc(duration, func() {
		s.expireRound(gameID, roundNumber)
	})
	s.timers[gameID] = timer
	s.timersMu.Unlock()
}

func (s *Server) cancelRoundTimer(gameID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[gameID]; ok {
		timer.Stop()
		delete(s.timers, gameID)
	}
}

// expireRound fires when a round timer elapses. The round number check keeps
// a stale timer from ending a later round, and the end-time latch makes a
// duplicate fire a no-op.
func (s *Server) expireRound(gameID string, roundNumber int) {
	updated, err := s.store.Update(gameID, func(machine *game.Machine) error {
		g := machine.Game()
		if g == nil || g.CurrentRound == nil {
			return errors.New("round already over")
		}
		if g.CurrentRound.Number != roundNumber || g.CurrentRound.Ended() {
			return errors.New("round already over")
		}
		machine.EndRound()
		return nil
	})
	if err != nil {
		return
	}
	s.log.Info().Str("game_id", gameID).Int("round", roundNumber).Msg("round timed out")
	if updated.State == game.StateFinished {
		s.finishGame(updated)
	}
}

// finishGame releases the round timer and archives the result. Archiving is
// fire-and-forget: a storage failure is logged, never surfaced to players.
func (s *Server) finishGame(g *game.Game) {
	s.cancelRoundTimer(g.ID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.history.SaveGame(ctx, g); err != nil {
			s.log.Error().Err(err).Str("game_id", g.ID).Msg("failed to archive game")
		}
	}()
}
