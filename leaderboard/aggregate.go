// Package leaderboard holds the pure scoring math (aggregation and
// ranking) and the WebSocket hub that fans leaderboard updates out to
// viewers. The math has no I/O and is safe to call concurrently.
package leaderboard

import (
	"sort"

	"github.com/fairwaylive/golf-tournament/models"
)

// AggregateRound sums a team's scores within one round. Scores belonging
// to other rounds or teams must be filtered out by the caller. Zero
// scores yields an all-zero aggregate: "not yet played" is a normal
// state, not an error, and holes never entered contribute nothing.
func AggregateRound(roundNumber int, scores []models.Score) models.RoundAggregate {
	agg := models.RoundAggregate{RoundNumber: roundNumber}
	for _, s := range scores {
		agg.Strokes += s.Strokes
		agg.Par += s.Par
		agg.HolesCompleted++
	}
	agg.ToPar = agg.Strokes - agg.Par
	return agg
}

// AggregateTeam builds a team's unranked leaderboard entry across the
// given rounds: per-round aggregates first, retained in the entry so the
// round-by-round splits survive, then summed into the totals. Scores for
// rounds not in the list are ignored.
func AggregateTeam(team models.Team, rounds []models.Round, scores []models.Score) models.LeaderboardEntry {
	entry := models.LeaderboardEntry{
		TeamID:      team.ID,
		TeamName:    team.Name,
		Player1Name: team.Player1Name,
		Player2Name: team.Player2Name,
		Rounds:      make(map[int]models.RoundAggregate, len(rounds)),
	}

	totalPar := 0
	for _, round := range rounds {
		var roundScores []models.Score
		for _, s := range scores {
			if s.TeamID == team.ID && s.RoundID == round.ID {
				roundScores = append(roundScores, s)
			}
		}
		agg := AggregateRound(round.RoundNumber, roundScores)
		entry.Rounds[round.RoundNumber] = agg

		entry.TotalStrokes += agg.Strokes
		entry.HolesCompleted += agg.HolesCompleted
		totalPar += agg.Par
	}
	entry.TotalToPar = entry.TotalStrokes - totalPar
	return entry
}

// AggregateRoundRow builds a team's unranked single-round row with
// per-hole detail ordered by hole number.
func AggregateRoundRow(team models.Team, roundNumber int, scores []models.Score) models.TeamRoundScore {
	agg := AggregateRound(roundNumber, scores)

	holes := make([]models.HoleScore, 0, len(scores))
	for _, s := range scores {
		holes = append(holes, models.HoleScore{
			HoleNumber: s.HoleNumber,
			Strokes:    s.Strokes,
			Par:        s.Par,
			ToPar:      s.Strokes - s.Par,
		})
	}
	sort.Slice(holes, func(i, j int) bool { return holes[i].HoleNumber < holes[j].HoleNumber })

	return models.TeamRoundScore{
		TeamID:         team.ID,
		TeamName:       team.Name,
		Player1Name:    team.Player1Name,
		Player2Name:    team.Player2Name,
		RoundNumber:    roundNumber,
		TotalStrokes:   agg.Strokes,
		ToPar:          agg.ToPar,
		HolesCompleted: agg.HolesCompleted,
		Holes:          holes,
	}
}
