package game

import "time"

const (
	StateLobby    = "lobby"
	StateDrawing  = "drawing"
	StateGuessing = "guessing"
	StateResults  = "results"
	StateFinished = "finished"
)

const (
	RewardSpeed       = "speed"
	RewardAccuracy    = "accuracy"
	RewardComeback    = "comeback"
	RewardFirst       = "first"
	RewardPerfect     = "perfect"
	RewardStreak      = "streak"
	RewardMasterpiece = "masterpiece"
)

type Settings struct {
	RoundDuration time.Duration
	RoundsPerGame int
}

func DefaultSettings() Settings {
	return Settings{
		RoundDuration: 60 * time.Second,
		RoundsPerGame: 3,
	}
}

type Player struct {
	ID             string
	Name           string
	Score          int
	IsDrawing      bool
	TotalRounds    int
	CorrectGuesses int
	Streak         int
	Rewards        []Reward
}

type DrawingPrompt struct {
	Word     string
	Category string
}

type Guess struct {
	PlayerID  string
	Text      string
	Timestamp time.Time
	IsCorrect bool
}

type Reward struct {
	Type    string
	Title   string
	Message string
	Points  int
}

type Round struct {
	Number    int
	DrawerID  string
	Prompt    DrawingPrompt
	Guesses   []Guess
	StartTime time.Time
	EndTime   time.Time
	Rewards   []Reward

	drawerRewarded bool
}

type Game struct {
	ID              string
	Players         []Player
	CurrentRound    *Round
	Rounds          []Round
	State           string
	Settings        Settings
	CurrentPlayerID string
}

// Ended reports whether the round has been finalized at least once.
// A zero EndTime means the drawing phase is still running.
func (r *Round) Ended() bool {
	return r != nil && !r.EndTime.IsZero()
}

func (g *Game) Player(id string) (*Player, bool) {
	if g == nil {
		return nil, false
	}
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

func (g *Game) Winner() *Player {
	if g == nil || len(g.Players) == 0 {
		return nil
	}
	best := &g.Players[0]
	for i := range g.Players {
		if g.Players[i].Score > best.Score {
			best = &g.Players[i]
		}
	}
	return best
}

func (g *Game) clone() *Game {
	if g == nil {
		return nil
	}
	next := *g
	next.Players = append([]Player(nil), g.Players...)
	for i := range next.Players {
		next.Players[i].Rewards = append([]Reward(nil), next.Players[i].Rewards...)
	}
	next.Rounds = append([]Round(nil), g.Rounds...)
	for i := range next.Rounds {
		next.Rounds[i].Guesses = append([]Guess(nil), next.Rounds[i].Guesses...)
		next.Rounds[i].Rewards = append([]Reward(nil), next.Rounds[i].Rewards...)
	}
	if g.CurrentRound != nil {
		round := *g.CurrentRound
		round.Guesses = append([]Guess(nil), g.CurrentRound.Guesses...)
		round.Rewards = append([]Reward(nil), g.CurrentRound.Rewards...)
		next.CurrentRound = &round
	}
	return &next
}
