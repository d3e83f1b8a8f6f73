package game

import (
	"testing"
	"time"
)

type fixedPrompts struct {
	prompt DrawingPrompt
}

func (f fixedPrompts) RandomPrompt() DrawingPrompt {
	return f.prompt
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestMachine(word string) (*Machine, *fakeClock) {
	clock := newFakeClock()
	m := NewMachine(
		fixedPrompts{prompt: DrawingPrompt{Word: word, Category: "Animals"}},
		WithClock(clock.Now),
	)
	return m, clock
}

func TestCreateGameDefaults(t *testing.T) {
	m, _ := newTestMachine("cat")
	g := m.CreateGame("Ada")
	if g.State != StateLobby {
		t.Fatalf("expected lobby state, got %s", g.State)
	}
	if len(g.Players) != 1 || g.Players[0].Name != "Ada" || g.Players[0].ID != "1" {
		t.Fatalf("unexpected players: %#v", g.Players)
	}
	if g.Settings.RoundDuration != 60*time.Second || g.Settings.RoundsPerGame != 3 {
		t.Fatalf("unexpected settings: %#v", g.Settings)
	}
	if g.ID == "" {
		t.Fatalf("expected game id")
	}
}

func TestCreateGameReplacesExisting(t *testing.T) {
	m, _ := newTestMachine("cat")
	first := m.CreateGame("Ada")
	second := m.CreateGame("Ben")
	if first.ID == second.ID {
		t.Fatalf("expected a fresh game id")
	}
	if len(second.Players) != 1 || second.Players[0].Name != "Ben" {
		t.Fatalf("unexpected players: %#v", second.Players)
	}
}

func TestAddPlayerOnlyInLobby(t *testing.T) {
	m, _ := newTestMachine("cat")
	if g := m.AddPlayer("Ben"); g != nil {
		t.Fatalf("expected no-op without a game, got %#v", g)
	}
	m.CreateGame("Ada")
	g := m.AddPlayer("Ben")
	if len(g.Players) != 2 || g.Players[1].ID != "2" {
		t.Fatalf("unexpected players: %#v", g.Players)
	}
	m.StartGame()
	g = m.AddPlayer("Cleo")
	if len(g.Players) != 2 {
		t.Fatalf("expected players fixed after start, got %#v", g.Players)
	}
}

func TestSetRoundsPerGameOnlyBeforeStart(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	g := m.SetRoundsPerGame(5)
	if g.Settings.RoundsPerGame != 5 {
		t.Fatalf("expected 5 rounds, got %d", g.Settings.RoundsPerGame)
	}
	if g := m.SetRoundsPerGame(0); g.Settings.RoundsPerGame != 5 {
		t.Fatalf("expected invalid count ignored, got %d", g.Settings.RoundsPerGame)
	}
	m.StartGame()
	if g := m.SetRoundsPerGame(9); g.Settings.RoundsPerGame != 5 {
		t.Fatalf("expected settings locked after start, got %d", g.Settings.RoundsPerGame)
	}
}

func TestStartGameNeedsTwoPlayers(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	g := m.StartGame()
	if g.State != StateLobby {
		t.Fatalf("expected lobby with one player, got %s", g.State)
	}
	m.AddPlayer("Ben")
	g = m.StartGame()
	if g.State != StateDrawing {
		t.Fatalf("expected drawing after start, got %s", g.State)
	}
	if g.CurrentRound == nil || g.CurrentRound.Number != 1 || g.CurrentRound.DrawerID != "1" {
		t.Fatalf("unexpected first round: %#v", g.CurrentRound)
	}
	if g.CurrentPlayerID != "1" {
		t.Fatalf("expected drawer to hold the device, got %q", g.CurrentPlayerID)
	}
	if !g.Players[0].IsDrawing || g.Players[1].IsDrawing {
		t.Fatalf("unexpected drawing flags: %#v", g.Players)
	}
}

func TestDrawerRotation(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.SetRoundsPerGame(4)
	m.StartGame()

	wantDrawers := []string{"1", "2", "1", "2"}
	for i, want := range wantDrawers {
		g := m.Game()
		if g.CurrentRound == nil || g.CurrentRound.DrawerID != want {
			t.Fatalf("round %d: expected drawer %s, got %#v", i+1, want, g.CurrentRound)
		}
		m.EndRound()
		m.StartRound()
	}
	if g := m.Game(); g.State != StateFinished {
		t.Fatalf("expected finished after four rounds, got %s", g.State)
	}
}

func TestSubmitGuessCorrectScoring(t *testing.T) {
	m, clock := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.StartGame()

	clock.Advance(12 * time.Second)
	g := m.SubmitGuess("2", "Cat")
	if g.State != StateResults {
		t.Fatalf("expected results after correct guess, got %s", g.State)
	}
	// base 10 + time bonus 4 + quick-draw 5 + first-guess 5
	guesser, _ := g.Player("2")
	if guesser.Score != 24 {
		t.Fatalf("expected guesser score 24, got %d", guesser.Score)
	}
	if guesser.Streak != 1 || guesser.CorrectGuesses != 1 {
		t.Fatalf("unexpected guesser stats: %#v", guesser)
	}
	// sole guesser correct: drawer lands the all-correct tier
	drawer, _ := g.Player("1")
	if drawer.Score != 8 {
		t.Fatalf("expected drawer score 8, got %d", drawer.Score)
	}
	if g.CurrentPlayerID != "" {
		t.Fatalf("expected device owner cleared, got %q", g.CurrentPlayerID)
	}
	if len(g.CurrentRound.Rewards) == 0 {
		t.Fatalf("expected round rewards recorded")
	}
}

func TestSubmitGuessWrongAdvancesTurn(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.AddPlayer("Cleo")
	m.StartGame()

	g := m.Game()
	if g.CurrentPlayerID != "1" {
		t.Fatalf("expected drawer first, got %q", g.CurrentPlayerID)
	}
	g = m.SubmitGuess("2", "dog")
	if g.State != StateDrawing {
		t.Fatalf("expected state unchanged on wrong guess, got %s", g.State)
	}
	if g.CurrentPlayerID != "3" {
		t.Fatalf("expected turn to pass to Cleo, got %q", g.CurrentPlayerID)
	}
	guesser, _ := g.Player("2")
	if guesser.Score != 0 || guesser.Streak != 0 {
		t.Fatalf("unexpected stats after wrong guess: %#v", guesser)
	}
}

func TestSubmitGuessPreconditions(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")

	// no active round
	if g := m.SubmitGuess("2", "cat"); g.State != StateLobby {
		t.Fatalf("expected no-op without a round, got %s", g.State)
	}
	m.StartGame()

	// drawer cannot guess
	g := m.SubmitGuess("1", "cat")
	if len(g.CurrentRound.Guesses) != 0 {
		t.Fatalf("expected drawer guess rejected, got %#v", g.CurrentRound.Guesses)
	}
	// unknown player
	g = m.SubmitGuess("9", "cat")
	if len(g.CurrentRound.Guesses) != 0 {
		t.Fatalf("expected unknown player rejected, got %#v", g.CurrentRound.Guesses)
	}
	// empty guess
	g = m.SubmitGuess("2", "   ")
	if len(g.CurrentRound.Guesses) != 0 {
		t.Fatalf("expected blank guess rejected, got %#v", g.CurrentRound.Guesses)
	}
}

func TestSubmitGuessIdempotent(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.StartGame()

	m.SubmitGuess("2", "cat")
	first, _ := m.Game().Player("2")
	firstScore := first.Score

	g := m.SubmitGuess("2", "cat")
	if len(g.CurrentRound.Guesses) != 1 {
		t.Fatalf("expected one recorded guess, got %d", len(g.CurrentRound.Guesses))
	}
	again, _ := g.Player("2")
	if again.Score != firstScore {
		t.Fatalf("expected score unchanged on duplicate, got %d want %d", again.Score, firstScore)
	}
}

func TestEndRoundLatch(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.StartGame()

	m.EndRound()
	g := m.Game()
	if len(g.Rounds) != 1 || g.State != StateGuessing {
		t.Fatalf("expected one appended round in guessing phase, got %d rounds state %s", len(g.Rounds), g.State)
	}
	if g.Players[0].TotalRounds != 1 {
		t.Fatalf("expected total rounds bumped once, got %d", g.Players[0].TotalRounds)
	}

	// a second expiry for the same round must not double-process
	g = m.EndRound()
	if len(g.Rounds) != 1 || g.Players[0].TotalRounds != 1 {
		t.Fatalf("expected repeated end ignored, got %d rounds %d totals", len(g.Rounds), g.Players[0].TotalRounds)
	}
}

func TestEndRoundDrawerConsolation(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.StartGame()

	g := m.EndRound()
	drawer, _ := g.Player("1")
	if drawer.Score != 2 {
		t.Fatalf("expected abstract-art consolation, got score %d", drawer.Score)
	}
	if g.CurrentPlayerID != "2" {
		t.Fatalf("expected first pending guesser, got %q", g.CurrentPlayerID)
	}

	// the drawer reward is settled; a late correct guess must not pay it again
	m.SubmitGuess("2", "cat")
	drawer, _ = m.Game().Player("1")
	if drawer.Score != 2 {
		t.Fatalf("expected drawer reward applied once, got score %d", drawer.Score)
	}
}

func TestGameFinishesAfterAllRounds(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.StartGame()

	for i := 0; i < 3; i++ {
		m.EndRound()
		m.StartRound()
	}
	g := m.Game()
	if g.State != StateFinished {
		t.Fatalf("expected finished, got %s", g.State)
	}
	if g.CurrentRound != nil {
		t.Fatalf("expected no active round, got %#v", g.CurrentRound)
	}
	if len(g.Rounds) != 3 {
		t.Fatalf("expected three rounds, got %d", len(g.Rounds))
	}
	// a stale start must not add a fourth round
	if g := m.StartRound(); g.State != StateFinished || len(g.Rounds) != 3 {
		t.Fatalf("expected start refused after finish, got %s with %d rounds", g.State, len(g.Rounds))
	}
	for _, player := range g.Players {
		if player.IsDrawing {
			t.Fatalf("expected drawing flags cleared: %#v", g.Players)
		}
		if player.TotalRounds != 3 {
			t.Fatalf("expected three total rounds, got %d", player.TotalRounds)
		}
	}
}

func TestGuessExclusivity(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.AddPlayer("Cleo")
	m.StartGame()

	m.SubmitGuess("1", "cat")
	m.SubmitGuess("2", "dog")
	m.SubmitGuess("2", "bird")
	m.SubmitGuess("3", "fish")

	g := m.Game()
	seen := map[string]int{}
	for _, guess := range g.CurrentRound.Guesses {
		if guess.PlayerID == g.CurrentRound.DrawerID {
			t.Fatalf("drawer guess recorded: %#v", guess)
		}
		seen[guess.PlayerID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Fatalf("player %s guessed %d times", id, count)
		}
	}
	if len(g.CurrentRound.Guesses) != 2 {
		t.Fatalf("expected two guesses, got %d", len(g.CurrentRound.Guesses))
	}
}

func TestEndToEndTwoPlayers(t *testing.T) {
	m, clock := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.SetRoundsPerGame(3)
	m.StartGame()

	g := m.Game()
	if g.State != StateDrawing || g.CurrentRound.DrawerID != "1" {
		t.Fatalf("expected Ada drawing round one, got %#v", g.CurrentRound)
	}

	clock.Advance(12 * time.Second)
	g = m.SubmitGuess("2", "cat")
	if g.State != StateResults {
		t.Fatalf("expected results, got %s", g.State)
	}
	guesser, _ := g.Player("2")
	if guesser.Score < 10 {
		t.Fatalf("expected at least base points, got %d", guesser.Score)
	}
	drawer, _ := g.Player("1")
	if drawer.Score == 0 {
		t.Fatalf("expected drawer reward applied")
	}

	g = m.EndRound()
	if g.State != StateGuessing || len(g.Rounds) != 1 {
		t.Fatalf("expected guessing after first round, got %s with %d rounds", g.State, len(g.Rounds))
	}
	g = m.StartRound()
	if g.State != StateDrawing || g.CurrentRound.Number != 2 || g.CurrentRound.DrawerID != "2" {
		t.Fatalf("expected Ben drawing round two, got %#v", g.CurrentRound)
	}
}

func TestRoundsImmutableOnceAppended(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.AddPlayer("Ben")
	m.AddPlayer("Cleo")
	m.StartGame()

	m.EndRound()
	appended := len(m.Game().Rounds[0].Guesses)

	// a late guess goes to the live round, not the appended record
	m.SubmitGuess("2", "dog")
	g := m.Game()
	if len(g.Rounds[0].Guesses) != appended {
		t.Fatalf("appended round mutated: %#v", g.Rounds[0].Guesses)
	}
	if len(g.CurrentRound.Guesses) != appended+1 {
		t.Fatalf("expected live round to record the guess")
	}
}

func TestReset(t *testing.T) {
	m, _ := newTestMachine("cat")
	m.CreateGame("Ada")
	m.Reset()
	if m.Game() != nil {
		t.Fatalf("expected game discarded")
	}
	// operations after reset stay no-ops
	if g := m.StartRound(); g != nil {
		t.Fatalf("expected no-op after reset, got %#v", g)
	}
}
