package server

import (
	"quickdraw/internal/game"
)

// snapshot renders a game for the device UI. The pass-and-play screen is
// shared by everyone at the table, so the prompt word is part of the payload
// and the client decides who gets to see it.
func snapshot(g *game.Game) map[string]any {
	if g == nil {
		return nil
	}
	players := make([]map[string]any, 0, len(g.Players))
	for _, player := range g.Players {
		players = append(players, playerPayload(player))
	}
	rounds := make([]map[string]any, 0, len(g.Rounds))
	for i := range g.Rounds {
		rounds = append(rounds, roundPayload(&g.Rounds[i]))
	}
	payload := map[string]any{
		"id":                g.ID,
		"state":             g.State,
		"players":           players,
		"rounds":            rounds,
		"current_player_id": g.CurrentPlayerID,
		"settings": map[string]any{
			"round_seconds":   int(g.Settings.RoundDuration.Seconds()),
			"rounds_per_game": g.Settings.RoundsPerGame,
		},
	}
	if g.CurrentRound != nil {
		payload["current_round"] = roundPayload(g.CurrentRound)
	}
	if g.State == game.StateFinished {
		if winner := g.Winner(); winner != nil {
			payload["winner"] = playerPayload(*winner)
		}
	}
	return payload
}

func playerPayload(player game.Player) map[string]any {
	title, message := game.ScoreTitle(player.Score)
	payload := map[string]any{
		"id":              player.ID,
		"name":            player.Name,
		"score":           player.Score,
		"is_drawing":      player.IsDrawing,
		"total_rounds":    player.TotalRounds,
		"correct_guesses": player.CorrectGuesses,
		"streak":          player.Streak,
		"score_title":     title,
		"score_message":   message,
	}
	if len(player.Rewards) > 0 {
		payload["rewards"] = rewardPayloads(player.Rewards)
	}
	return payload
}

func roundPayload(round *game.Round) map[string]any {
	guesses := make([]map[string]any, 0, len(round.Guesses))
	for _, guess := range round.Guesses {
		guesses = append(guesses, map[string]any{
			"player_id":  guess.PlayerID,
			"text":       guess.Text,
			"timestamp":  guess.Timestamp,
			"is_correct": guess.IsCorrect,
		})
	}
	payload := map[string]any{
		"number":     round.Number,
		"drawer_id":  round.DrawerID,
		"word":       round.Prompt.Word,
		"category":   round.Prompt.Category,
		"guesses":    guesses,
		"start_time": round.StartTime,
	}
	if round.Ended() {
		payload["end_time"] = round.EndTime
	}
	if len(round.Rewards) > 0 {
		payload["rewards"] = rewardPayloads(round.Rewards)
	}
	return payload
}

func rewardPayloads(rewards []game.Reward) []map[string]any {
	list := make([]map[string]any, 0, len(rewards))
	for _, reward := range rewards {
		list = append(list, map[string]any{
			"type":    reward.Type,
			"title":   reward.Title,
			"message": reward.Message,
			"points":  reward.Points,
		})
	}
	return list
}
