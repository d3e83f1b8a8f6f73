package game

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Machine owns a single Game and applies lifecycle events to it. Every
// operation computes the next snapshot from the current one and swaps it,
// so a snapshot handed out earlier never changes underneath its reader.
// Operations are silent no-ops when their preconditions do not hold; the
// device UI is re-entrant (double taps, stale timers) and callers check
// the resulting state instead of catching errors.
//
// A Machine is not safe for concurrent use. The owner serializes all
// mutations, which keeps the single-writer model of the original game.
type Machine struct {
	prompts  PromptSource
	now      func() time.Time
	defaults Settings
	game     *Game
}

type Option func(*Machine)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithSettings overrides the settings new games start with.
func WithSettings(settings Settings) Option {
	return func(m *Machine) { m.defaults = settings }
}

func NewMachine(prompts PromptSource, opts ...Option) *Machine {
	m := &Machine{
		prompts:  prompts,
		now:      func() time.Time { return time.Now().UTC() },
		defaults: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Game returns the current snapshot. Callers must treat it as read-only.
func (m *Machine) Game() *Game {
	return m.game
}

// CreateGame starts a fresh lobby with a single player, replacing any
// game already in progress.
func (m *Machine) CreateGame(playerName string) *Game {
	m.game = &Game{
		ID: uuid.NewString(),
		Players: []Player{
			{ID: "1", Name: playerName},
		},
		Rounds:   []Round{},
		State:    StateLobby,
		Settings: m.defaults,
	}
	return m.game
}

// AddPlayer appends a player while the game is still in the lobby.
func (m *Machine) AddPlayer(name string) *Game {
	if m.game == nil || m.game.State != StateLobby {
		return m.game
	}
	next := m.game.clone()
	next.Players = append(next.Players, Player{
		ID:   strconv.Itoa(len(next.Players) + 1),
		Name: name,
	})
	m.game = next
	return m.game
}

// SetRoundsPerGame adjusts the round count before the game starts.
func (m *Machine) SetRoundsPerGame(rounds int) *Game {
	if m.game == nil || m.game.State != StateLobby || rounds <= 0 {
		return m.game
	}
	next := m.game.clone()
	next.Settings.RoundsPerGame = rounds
	m.game = next
	return m.game
}

// StartGame moves from the lobby straight into round one. Needs at least
// two players; with fewer the game is left untouched.
func (m *Machine) StartGame() *Game {
	if m.game == nil || m.game.State != StateLobby || len(m.game.Players) < 2 {
		return m.game
	}
	return m.StartRound()
}

// StartRound begins the next round: rotates the drawer, draws a fresh
// prompt and enters the drawing phase. Refuses once every scheduled round
// has been played.
func (m *Machine) StartRound() *Game {
	if m.game == nil || len(m.game.Players) == 0 || m.game.State == StateFinished {
		return m.game
	}
	roundNumber := len(m.game.Rounds) + 1
	if roundNumber > m.game.Settings.RoundsPerGame {
		return m.game
	}
	next := m.game.clone()
	drawer := &next.Players[(roundNumber-1)%len(next.Players)]
	next.CurrentRound = &Round{
		Number:    roundNumber,
		DrawerID:  drawer.ID,
		Prompt:    m.prompts.RandomPrompt(),
		Guesses:   []Guess{},
		StartTime: m.now(),
	}
	for i := range next.Players {
		next.Players[i].IsDrawing = next.Players[i].ID == drawer.ID
	}
	next.CurrentPlayerID = drawer.ID
	next.State = StateDrawing
	m.game = next
	return m.game
}

// SubmitGuess records one guess for a non-drawer and resolves its effects:
// scoring, streaks and reward payouts on a correct answer, streak reset and
// turn advance on a wrong one. Duplicate submissions by the same player in
// one round are dropped, as are guesses from the drawer, empty guesses and
// guesses outside an active round.
func (m *Machine) SubmitGuess(playerID, text string) *Game {
	g := m.game
	if g == nil || g.CurrentRound == nil {
		return g
	}
	if g.State != StateDrawing && g.State != StateGuessing {
		return g
	}
	if strings.TrimSpace(text) == "" {
		return g
	}
	if playerID == g.CurrentRound.DrawerID {
		return g
	}
	if _, ok := g.Player(playerID); !ok {
		return g
	}
	if hasGuessed(g.CurrentRound, playerID) {
		return g
	}

	next := g.clone()
	round := next.CurrentRound
	now := m.now()
	guessTime := now.Sub(round.StartTime)
	guess := Guess{
		PlayerID:  playerID,
		Text:      text,
		Timestamp: now,
		IsCorrect: Matches(text, round.Prompt.Word),
	}
	round.Guesses = append(round.Guesses, guess)

	guesser, _ := next.Player(playerID)
	if guess.IsCorrect {
		rewards := GuessRewards(guess, round.Guesses, playerID, guessTime, next.Settings.RoundDuration, *guesser)
		points := BasePoints + TimeBonus(guessTime, next.Settings.RoundDuration)
		for _, reward := range rewards {
			points += reward.Points
		}
		guesser.Score += points
		guesser.CorrectGuesses++
		guesser.Streak++
		guesser.Rewards = append(guesser.Rewards, rewards...)
		round.Rewards = append(round.Rewards, rewards...)
		m.applyDrawerReward(next, round)
		next.CurrentPlayerID = ""
		next.State = StateResults
	} else {
		guesser.Streak = 0
		next.CurrentPlayerID = nextGuesser(next, round)
	}
	m.game = next
	return m.game
}

// EndRound finalizes the current round: stamps the end time, settles the
// drawer reward if no correct guess already did, bumps everyone's round
// count and appends the round to the game record. The last scheduled round
// finishes the game; otherwise the round stays open for remaining guessers
// in the guessing phase. Firing twice is harmless; the end-time stamp acts
// as the latch.
func (m *Machine) EndRound() *Game {
	g := m.game
	if g == nil || g.CurrentRound == nil || g.CurrentRound.Ended() {
		return g
	}
	next := g.clone()
	round := next.CurrentRound
	round.EndTime = m.now()
	m.applyDrawerReward(next, round)
	for i := range next.Players {
		next.Players[i].TotalRounds++
	}
	next.Rounds = append(next.Rounds, *round)

	if len(next.Rounds) >= next.Settings.RoundsPerGame {
		next.CurrentRound = nil
		next.CurrentPlayerID = ""
		next.State = StateFinished
		for i := range next.Players {
			next.Players[i].IsDrawing = false
		}
	} else {
		next.CurrentPlayerID = nextGuesser(next, round)
		next.State = StateGuessing
	}
	m.game = next
	return m.game
}

// Reset discards the in-memory game. Saved history is untouched.
func (m *Machine) Reset() {
	m.game = nil
}

func (m *Machine) applyDrawerReward(g *Game, round *Round) {
	if round.drawerRewarded {
		return
	}
	round.drawerRewarded = true
	reward := DrawerReward(correctGuessers(round), len(g.Players))
	if reward == nil {
		return
	}
	if drawer, ok := g.Player(round.DrawerID); ok {
		drawer.Score += reward.Points
		drawer.Rewards = append(drawer.Rewards, *reward)
	}
	round.Rewards = append(round.Rewards, *reward)
}
