package game

// Turn order is never stored: the next guesser is recomputed from the
// players slice and the guesses recorded so far, which keeps the order
// stable against out-of-order UI calls.

func hasGuessed(round *Round, playerID string) bool {
	if round == nil {
		return false
	}
	for _, guess := range round.Guesses {
		if guess.PlayerID == playerID {
			return true
		}
	}
	return false
}

// nextGuesser returns the first non-drawer, in stored player order, who has
// not guessed yet this round. Empty when everyone has had their turn.
func nextGuesser(g *Game, round *Round) string {
	if g == nil || round == nil {
		return ""
	}
	for _, player := range g.Players {
		if player.ID == round.DrawerID {
			continue
		}
		if !hasGuessed(round, player.ID) {
			return player.ID
		}
	}
	return ""
}

func correctGuessers(round *Round) int {
	if round == nil {
		return 0
	}
	count := 0
	for _, guess := range round.Guesses {
		if guess.IsCorrect {
			count++
		}
	}
	return count
}
