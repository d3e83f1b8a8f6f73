package game

import "time"

const (
	// BasePoints is awarded for every correct guess before bonuses.
	BasePoints = 10
	// MaxTimeBonus caps the time-remaining bonus on a correct guess.
	MaxTimeBonus = 5
)

// TimeBonus converts the time left on the round clock into bonus points:
// one point per ten unused seconds, capped at MaxTimeBonus.
func TimeBonus(guessTime, roundDuration time.Duration) int {
	remaining := roundDuration - guessTime
	if remaining < 0 {
		remaining = 0
	}
	bonus := int(remaining / (10 * time.Second))
	if bonus > MaxTimeBonus {
		bonus = MaxTimeBonus
	}
	return bonus
}

// SpeedReward pays out when the guess lands early in the round. Tiers are
// mutually exclusive, checked fastest first.
func SpeedReward(guessTime, roundDuration time.Duration) *Reward {
	if roundDuration <= 0 {
		return nil
	}
	percentUsed := guessTime.Seconds() / roundDuration.Seconds() * 100
	if percentUsed < 15 {
		return &Reward{
			Type:    RewardSpeed,
			Title:   "Lightning Brain",
			Message: "You guessed it before most people even looked at the drawing",
			Points:  8,
		}
	}
	if percentUsed < 35 {
		return &Reward{
			Type:    RewardSpeed,
			Title:   "Quick on the Draw",
			Message: "Fast guess! You're either really smart or really lucky",
			Points:  5,
		}
	}
	return nil
}

// FirstGuessReward pays out when the round's very first guess is correct.
func FirstGuessReward(isFirstGuess, wasCorrect bool) *Reward {
	if !isFirstGuess || !wasCorrect {
		return nil
	}
	return &Reward{
		Type:    RewardFirst,
		Title:   "First Try Flex",
		Message: "Got it on the first guess. No need to be so good at this.",
		Points:  5,
	}
}

// StreakReward pays out on consecutive correct guesses across rounds,
// highest tier first.
func StreakReward(streak int) *Reward {
	if streak >= 5 {
		return &Reward{
			Type:    RewardStreak,
			Title:   "UNSTOPPABLE",
			Message: "You're on fire and everyone else is salty",
			Points:  10,
		}
	}
	if streak >= 3 {
		return &Reward{
			Type:    RewardStreak,
			Title:   "Hot Streak",
			Message: "Three in a row! You're getting dangerous",
			Points:  5,
		}
	}
	return nil
}

// ComebackReward pays out when a player finally answers correctly after
// three or more wrong guesses in the same round. With submissions limited
// to one guess per player per round this stays unreachable in live play;
// the rule is kept for parity with the reward table.
func ComebackReward(previousWrongGuesses int, wasCorrect bool) *Reward {
	if !wasCorrect || previousWrongGuesses < 3 {
		return nil
	}
	return &Reward{
		Type:    RewardComeback,
		Title:   "Never Give Up",
		Message: "You guessed wrong like 3+ times but finally got it. Persistence!",
		Points:  3,
	}
}

// DrawerReward grades the drawer on how many guessers got the word.
// All-correct and zero-correct are checked before the partial tiers.
func DrawerReward(correctGuessers, totalPlayers int) *Reward {
	maxGuessers := totalPlayers - 1
	if maxGuessers <= 0 {
		return nil
	}
	if correctGuessers == 0 {
		return &Reward{
			Type:    RewardMasterpiece,
			Title:   "Abstract Art Award",
			Message: "Nobody guessed it... but your art was... avant-garde?",
			Points:  2,
		}
	}
	if correctGuessers == maxGuessers {
		return &Reward{
			Type:    RewardMasterpiece,
			Title:   "Picasso Who?",
			Message: "Everyone guessed it! Your art skills are actually impressive",
			Points:  8,
		}
	}
	if correctGuessers >= (maxGuessers+1)/2 {
		return &Reward{
			Type:    RewardMasterpiece,
			Title:   "Artistic Legend",
			Message: "Most people got it! Your drawing wasn't terrible",
			Points:  5,
		}
	}
	return &Reward{
		Type:    RewardMasterpiece,
		Title:   "Decent Effort",
		Message: "At least someone got it. Your drawing was... recognizable?",
		Points:  3,
	}
}

// GuessRewards aggregates every bonus a correct guess earns, in a fixed
// order: speed, first-guess, streak, comeback. allGuesses must already
// include the guess being scored. Returns nil for incorrect guesses.
func GuessRewards(guess Guess, allGuesses []Guess, guesserID string, guessTime, roundDuration time.Duration, player Player) []Reward {
	if !guess.IsCorrect {
		return nil
	}

	wrongByGuesser := 0
	for _, g := range allGuesses {
		if !g.IsCorrect && g.PlayerID == guesserID {
			wrongByGuesser++
		}
	}

	var rewards []Reward
	if reward := SpeedReward(guessTime, roundDuration); reward != nil {
		rewards = append(rewards, *reward)
	}
	if len(allGuesses) == 1 {
		if reward := FirstGuessReward(true, true); reward != nil {
			rewards = append(rewards, *reward)
		}
	}
	if reward := StreakReward(player.Streak + 1); reward != nil {
		rewards = append(rewards, *reward)
	}
	if wrongByGuesser >= 3 {
		if reward := ComebackReward(wrongByGuesser, true); reward != nil {
			rewards = append(rewards, *reward)
		}
	}
	return rewards
}

// ScoreTitle maps a final score to the flavor title shown on results.
func ScoreTitle(score int) (string, string) {
	switch {
	case score >= 200:
		return "Drawing Game Deity", "You have transcended. Bow before your greatness!"
	case score >= 150:
		return "Master Artist", "Your skills are legendary!"
	case score >= 100:
		return "Drawing Champion", "You're really good at this!"
	case score >= 50:
		return "Rising Star", "You're getting the hang of it!"
	case score >= 20:
		return "Amateur Artist", "Not bad for a beginner!"
	default:
		return "Getting Started", "Everyone starts somewhere!"
	}
}
