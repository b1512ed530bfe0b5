package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylive/golf-tournament/models"
)

func entry(teamID, strokes, toPar int) models.LeaderboardEntry {
	return models.LeaderboardEntry{TeamID: teamID, TotalStrokes: strokes, TotalToPar: toPar}
}

func TestRankEntriesOrdering(t *testing.T) {
	t.Parallel()

	ranked := RankEntries([]models.LeaderboardEntry{
		entry(1, 72, 1),
		entry(2, 70, 0),
		entry(3, 68, -2),
	})

	require.Equal(t, []int{3, 2, 1}, teamOrder(ranked))
	require.Equal(t, []int{1, 2, 3}, positions(ranked))
}

func TestRankEntriesTiesSharePosition(t *testing.T) {
	t.Parallel()

	// Two teams tied on both to-par and strokes share first; the next
	// distinct team is third, not second.
	ranked := RankEntries([]models.LeaderboardEntry{
		entry(5, 70, -2),
		entry(2, 70, -2),
		entry(9, 71, -1),
	})

	require.Equal(t, []int{1, 1, 3}, positions(ranked))
	// Tied rows are ordered by team ID for a stable output.
	require.Equal(t, []int{2, 5, 9}, teamOrder(ranked))
}

func TestRankEntriesStrokesBreakToParTie(t *testing.T) {
	t.Parallel()

	// Same to-par, fewer strokes ranks higher (fewer holes needed to get
	// there in absolute terms is still the lower card).
	ranked := RankEntries([]models.LeaderboardEntry{
		entry(1, 74, 2),
		entry(2, 72, 2),
	})

	require.Equal(t, []int{2, 1}, teamOrder(ranked))
	require.Equal(t, []int{1, 2}, positions(ranked))
}

func TestRankEntriesPartialRoundsCompareByToPar(t *testing.T) {
	t.Parallel()

	// A team even through few holes outranks a team over par through
	// many: the comparison is relative to par, never raw strokes first.
	ranked := RankEntries([]models.LeaderboardEntry{
		{TeamID: 1, TotalStrokes: 40, TotalToPar: 1, HolesCompleted: 9},
		{TeamID: 2, TotalStrokes: 12, TotalToPar: 0, HolesCompleted: 3},
	})

	require.Equal(t, []int{2, 1}, teamOrder(ranked))
}

func TestRankEntriesEmpty(t *testing.T) {
	t.Parallel()

	ranked := RankEntries(nil)
	require.NotNil(t, ranked)
	require.Empty(t, ranked)
}

func TestRankEntriesDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []models.LeaderboardEntry{entry(2, 73, 1), entry(1, 70, -2)}
	_ = RankEntries(in)
	require.Equal(t, 2, in[0].TeamID)
	require.Equal(t, 0, in[0].Position)
	require.Equal(t, 1, in[1].TeamID)
}

func TestRankEntriesAllTied(t *testing.T) {
	t.Parallel()

	ranked := RankEntries([]models.LeaderboardEntry{
		entry(4, 70, 0),
		entry(1, 70, 0),
		entry(3, 70, 0),
	})

	require.Equal(t, []int{1, 1, 1}, positions(ranked))
	require.Equal(t, []int{1, 3, 4}, teamOrder(ranked))
}

func TestRankRoundRows(t *testing.T) {
	t.Parallel()

	ranked := RankRoundRows([]models.TeamRoundScore{
		{TeamID: 1, TotalStrokes: 38, ToPar: 2},
		{TeamID: 2, TotalStrokes: 36, ToPar: 0},
		{TeamID: 3, TotalStrokes: 36, ToPar: 0},
	})

	require.Equal(t, 2, ranked[0].TeamID)
	require.Equal(t, 3, ranked[1].TeamID)
	require.Equal(t, []int{1, 1, 3}, []int{ranked[0].Position, ranked[1].Position, ranked[2].Position})
}

func teamOrder(entries []models.LeaderboardEntry) []int {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.TeamID
	}
	return ids
}

func positions(entries []models.LeaderboardEntry) []int {
	pos := make([]int, len(entries))
	for i, e := range entries {
		pos[i] = e.Position
	}
	return pos
}
