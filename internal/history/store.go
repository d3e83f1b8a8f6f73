// Package history archives completed games. The archive is independent of
// the live game: saving never blocks or rolls back a state transition, and
// an unavailable database degrades to an empty archive instead of an error.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quickdraw/internal/db"
	"quickdraw/internal/game"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewStore(conn *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{db: conn, log: logger}
}

type PlayerSnapshot struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Score          int      `json:"score"`
	IsDrawing      bool     `json:"is_drawing"`
	TotalRounds    int      `json:"total_rounds"`
	CorrectGuesses int      `json:"correct_guesses"`
	Streak         int      `json:"streak"`
	Rewards        []Reward `json:"rewards,omitempty"`
	ScoreTitle     string   `json:"score_title,omitempty"`
}

type Reward struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Points  int    `json:"points"`
}

type GuessSnapshot struct {
	PlayerID  string    `json:"player_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsCorrect bool      `json:"is_correct"`
}

type RoundSnapshot struct {
	Number    int             `json:"number"`
	DrawerID  string          `json:"drawer_id"`
	Word      string          `json:"word"`
	Category  string          `json:"category"`
	Guesses   []GuessSnapshot `json:"guesses"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Rewards   []Reward        `json:"rewards,omitempty"`
}

type Entry struct {
	ID          string           `json:"id"`
	GameID      string           `json:"game_id"`
	CompletedAt time.Time        `json:"completed_at"`
	Players     []PlayerSnapshot `json:"players"`
	Rounds      []RoundSnapshot  `json:"rounds"`
	Winner      *PlayerSnapshot  `json:"winner,omitempty"`
	TotalRounds int              `json:"total_rounds"`
}

// SaveGame archives a finished game. Games that never completed a round are
// skipped. Saving the same game twice is treated as already archived.
func (s *Store) SaveGame(ctx context.Context, g *game.Game) error {
	if s.db == nil {
		return nil
	}
	if g == nil || g.State != game.StateFinished || len(g.Rounds) == 0 {
		return nil
	}
	entry := entryFromGame(g)
	players, err := json.Marshal(entry.Players)
	if err != nil {
		return err
	}
	rounds, err := json.Marshal(entry.Rounds)
	if err != nil {
		return err
	}
	record := db.GameHistory{
		ID:          entry.ID,
		GameID:      entry.GameID,
		CompletedAt: entry.CompletedAt,
		Players:     datatypes.JSON(players),
		Rounds:      datatypes.JSON(rounds),
		TotalRounds: entry.TotalRounds,
	}
	if entry.Winner != nil {
		record.WinnerName = entry.Winner.Name
		record.WinnerScore = entry.Winner.Score
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			s.log.Debug().Str("game_id", g.ID).Msg("game already archived")
			return nil
		}
		return err
	}
	s.log.Info().Str("game_id", g.ID).Int("rounds", entry.TotalRounds).Msg("game archived")
	return nil
}

// LoadAll returns the archive newest-first. Failures degrade to an empty
// list so the history screen never blocks on storage trouble.
func (s *Store) LoadAll(ctx context.Context) []Entry {
	if s.db == nil {
		return []Entry{}
	}
	var records []db.GameHistory
	if err := s.db.WithContext(ctx).Order("completed_at DESC").Find(&records).Error; err != nil {
		s.log.Warn().Err(err).Msg("failed to load game history")
		return []Entry{}
	}
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry, err := entryFromRecord(record)
		if err != nil {
			s.log.Warn().Err(err).Str("history_id", record.ID).Msg("skipping corrupt history row")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Delete removes one archive entry by id. Other entries are unaffected.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&db.GameHistory{}, "id = ?", id).Error
}

// ClearAll wipes the archive.
func (s *Store) ClearAll(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&db.GameHistory{}).Error
}

func entryFromGame(g *game.Game) Entry {
	entry := Entry{
		ID:          uuid.NewString(),
		GameID:      g.ID,
		CompletedAt: time.Now().UTC(),
		Players:     make([]PlayerSnapshot, 0, len(g.Players)),
		Rounds:      make([]RoundSnapshot, 0, len(g.Rounds)),
		TotalRounds: len(g.Rounds),
	}
	for _, player := range g.Players {
		entry.Players = append(entry.Players, playerSnapshot(player))
	}
	for _, round := range g.Rounds {
		entry.Rounds = append(entry.Rounds, roundSnapshot(round))
	}
	if winner := g.Winner(); winner != nil {
		snapshot := playerSnapshot(*winner)
		entry.Winner = &snapshot
	}
	return entry
}

func playerSnapshot(player game.Player) PlayerSnapshot {
	title, _ := game.ScoreTitle(player.Score)
	snapshot := PlayerSnapshot{
		ID:             player.ID,
		Name:           player.Name,
		Score:          player.Score,
		TotalRounds:    player.TotalRounds,
		CorrectGuesses: player.CorrectGuesses,
		Streak:         player.Streak,
		ScoreTitle:     title,
	}
	for _, reward := range player.Rewards {
		snapshot.Rewards = append(snapshot.Rewards, Reward(reward))
	}
	return snapshot
}

func roundSnapshot(round game.Round) RoundSnapshot {
	snapshot := RoundSnapshot{
		Number:    round.Number,
		DrawerID:  round.DrawerID,
		Word:      round.Prompt.Word,
		Category:  round.Prompt.Category,
		Guesses:   make([]GuessSnapshot, 0, len(round.Guesses)),
		StartTime: round.StartTime,
		EndTime:   round.EndTime,
	}
	for _, guess := range round.Guesses {
		snapshot.Guesses = append(snapshot.Guesses, GuessSnapshot{
			PlayerID:  guess.PlayerID,
			Text:      guess.Text,
			Timestamp: guess.Timestamp,
			IsCorrect: guess.IsCorrect,
		})
	}
	for _, reward := range round.Rewards {
		snapshot.Rewards = append(snapshot.Rewards, Reward(reward))
	}
	return snapshot
}

func entryFromRecord(record db.GameHistory) (Entry, error) {
	entry := Entry{
		ID:          record.ID,
		GameID:      record.GameID,
		CompletedAt: record.CompletedAt,
		TotalRounds: record.TotalRounds,
	}
	if err := json.Unmarshal(record.Players, &entry.Players); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal(record.Rounds, &entry.Rounds); err != nil {
		return Entry{}, err
	}
	for i := range entry.Players {
		if entry.Players[i].Name == record.WinnerName {
			winner := entry.Players[i]
			entry.Winner = &winner
			break
		}
	}
	return entry, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
