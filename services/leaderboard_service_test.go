package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylive/golf-tournament/models"
)

// seedTournament builds a two-round tournament with three teams:
//
//	Albatross (1): round 1 holes 1-2 at 4/4 and 3/4 (-1)
//	Bogeymen  (2): round 1 holes 1-2 at 4/4 and 5/4 (+1), round 2 hole 1 at 4/4
//	Caddies   (3): no scores yet
func seedTournament(f *fixture) {
	f.addTournament(models.Tournament{ID: 1, Name: "Spring Invitational", Status: models.StatusActive})
	f.addTeam(models.Team{ID: 1, TournamentID: 1, Name: "Albatross", Player1Name: "Ann", Player2Name: "Al"})
	f.addTeam(models.Team{ID: 2, TournamentID: 1, Name: "Bogeymen", Player1Name: "Bea", Player2Name: "Ben"})
	f.addTeam(models.Team{ID: 3, TournamentID: 1, Name: "Caddies", Player1Name: "Cam", Player2Name: "Cal"})
	f.addRound(models.Round{ID: 10, TournamentID: 1, RoundNumber: 1})
	f.addRound(models.Round{ID: 11, TournamentID: 1, RoundNumber: 2})

	f.addScore(models.Score{TeamID: 1, RoundID: 10, TournamentID: 1, HoleNumber: 1, Strokes: 4, Par: 4})
	f.addScore(models.Score{TeamID: 1, RoundID: 10, TournamentID: 1, HoleNumber: 2, Strokes: 3, Par: 4})
	f.addScore(models.Score{TeamID: 2, RoundID: 10, TournamentID: 1, HoleNumber: 1, Strokes: 4, Par: 4})
	f.addScore(models.Score{TeamID: 2, RoundID: 10, TournamentID: 1, HoleNumber: 2, Strokes: 5, Par: 4})
	f.addScore(models.Score{TeamID: 2, RoundID: 11, TournamentID: 1, HoleNumber: 1, Strokes: 4, Par: 4})
}

func newLeaderboardServiceUnderTest(f *fixture) LeaderboardService {
	return NewLeaderboardService(
		&fakeTournamentRepo{f: f},
		&fakeTeamRepo{f: f},
		&fakeRoundRepo{f: f},
		&fakeScoreRepo{f: f},
	)
}

func TestComputeTournamentLeaderboard(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	result, err := svc.ComputeTournamentLeaderboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, result.TournamentID)
	require.Equal(t, "Spring Invitational", result.TournamentName)
	require.Equal(t, 2, result.RoundCount)
	require.Len(t, result.Entries, 3)

	// Albatross at -1 leads; Caddies at even (no holes yet) is second;
	// Bogeymen at +1 over three holes trails.
	albatross := result.Entries[0]
	require.Equal(t, "Albatross", albatross.TeamName)
	require.Equal(t, 1, albatross.Position)
	require.Equal(t, -1, albatross.TotalToPar)
	require.Equal(t, 7, albatross.TotalStrokes)
	require.Equal(t, 2, albatross.HolesCompleted)

	caddies := result.Entries[1]
	require.Equal(t, "Caddies", caddies.TeamName)
	require.Equal(t, 2, caddies.Position)
	require.Equal(t, 0, caddies.TotalToPar)
	require.Equal(t, 0, caddies.HolesCompleted)

	bogeymen := result.Entries[2]
	require.Equal(t, "Bogeymen", bogeymen.TeamName)
	require.Equal(t, 3, bogeymen.Position)
	require.Equal(t, 1, bogeymen.TotalToPar)
	require.Equal(t, 13, bogeymen.TotalStrokes)
	require.Equal(t, 3, bogeymen.HolesCompleted)

	// Round splits survive into the entry.
	require.Equal(t, 1, bogeymen.Rounds[1].ToPar)
	require.Equal(t, 0, bogeymen.Rounds[2].ToPar)
}

func TestComputeTournamentLeaderboardUnknownTournament(t *testing.T) {
	t.Parallel()

	svc := newLeaderboardServiceUnderTest(newFixture())
	_, err := svc.ComputeTournamentLeaderboard(context.Background(), 42)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestComputeRoundLeaderboard(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	rows, err := svc.ComputeRoundLeaderboard(context.Background(), 1, 1)
	require.NoError(t, err)
	// Only teams with scores in the round appear; Caddies does not.
	require.Len(t, rows, 2)

	require.Equal(t, "Albatross", rows[0].TeamName)
	require.Equal(t, 1, rows[0].Position)
	require.Equal(t, -1, rows[0].ToPar)
	require.Len(t, rows[0].Holes, 2)

	// Bogeymen's round 2 score must not bleed into its round 1 row.
	require.Equal(t, "Bogeymen", rows[1].TeamName)
	require.Equal(t, 2, rows[1].Position)
	require.Equal(t, 9, rows[1].TotalStrokes)
	require.Equal(t, 2, rows[1].HolesCompleted)
}

func TestComputeRoundLeaderboardMissingRound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	rows, err := svc.ComputeRoundLeaderboard(context.Background(), 1, 9)
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestComputeRoundLeaderboardRoundWithoutScores(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	f.addRound(models.Round{ID: 12, TournamentID: 1, RoundNumber: 3})
	svc := newLeaderboardServiceUnderTest(f)

	rows, err := svc.ComputeRoundLeaderboard(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	summary, err := svc.Summary(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, summary.TeamCount)
	require.Equal(t, 2, summary.RoundCount)
	require.Len(t, summary.Leaders, 2)
	require.Equal(t, "Albatross", summary.Leaders[0].TeamName)
	require.Equal(t, "Caddies", summary.Leaders[1].TeamName)
}

func TestSummaryTopLargerThanField(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	summary, err := svc.Summary(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, summary.Leaders, 3)
}

func TestTeamWindow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	// Caddies sits second; window 1 returns all three rows around it.
	window, err := svc.TeamWindow(context.Background(), 1, 3, 1)
	require.NoError(t, err)
	require.Equal(t, 2, window.Position)
	require.Equal(t, 3, window.TotalTeams)
	require.Len(t, window.Entries, 3)

	// The leader clipped at the top only extends downward.
	window, err = svc.TeamWindow(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, window.Position)
	require.Len(t, window.Entries, 2)
	require.Equal(t, "Albatross", window.Entries[0].TeamName)
}

func TestTeamWindowUnknownTeam(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seedTournament(f)
	svc := newLeaderboardServiceUnderTest(f)

	_, err := svc.TeamWindow(context.Background(), 1, 99, 1)
	require.ErrorIs(t, err, ErrTeamNotFound)
}
