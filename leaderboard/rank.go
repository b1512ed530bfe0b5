package leaderboard

import (
	"sort"

	"github.com/fairwaylive/golf-tournament/models"
)

// sortKey orders leaderboard rows: lower to-par first, then fewer total
// strokes, then team ID so the output is fully deterministic.
type sortKey struct {
	ToPar   int
	Strokes int
	TeamID  int
}

func (k sortKey) less(o sortKey) bool {
	if k.ToPar != o.ToPar {
		return k.ToPar < o.ToPar
	}
	if k.Strokes != o.Strokes {
		return k.Strokes < o.Strokes
	}
	return k.TeamID < o.TeamID
}

// ties reports whether two rows share a position. Only to-par and strokes
// count; the team-ID tiebreak orders tied rows without splitting them.
func (k sortKey) ties(o sortKey) bool {
	return k.ToPar == o.ToPar && k.Strokes == o.Strokes
}

// assignPositions walks rows already sorted by sortKey. The first row gets
// position 1; a row tying its predecessor shares its position; otherwise
// the position jumps to the row's 1-based index (two teams tied for 1st
// are both 1, the next distinct team is 3).
func assignPositions(n int, keyAt func(int) sortKey, setPos func(i, pos int)) {
	if n == 0 {
		return
	}
	setPos(0, 1)
	pos := 1
	for i := 1; i < n; i++ {
		if !keyAt(i).ties(keyAt(i - 1)) {
			pos = i + 1
		}
		setPos(i, pos)
	}
}

// RankEntries sorts tournament entries and assigns positions. The input
// slice is never mutated; a new ranked slice is returned.
func RankEntries(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	key := func(i int) sortKey {
		return sortKey{ToPar: ranked[i].TotalToPar, Strokes: ranked[i].TotalStrokes, TeamID: ranked[i].TeamID}
	}
	sort.Slice(ranked, func(i, j int) bool { return key(i).less(key(j)) })
	assignPositions(len(ranked), key, func(i, pos int) { ranked[i].Position = pos })
	return ranked
}

// RankRoundRows ranks single-round rows with the same comparator and
// position rule as the tournament leaderboard. The round leaderboard is
// the same algorithm at a narrower scope, not a second one.
func RankRoundRows(rows []models.TeamRoundScore) []models.TeamRoundScore {
	ranked := make([]models.TeamRoundScore, len(rows))
	copy(ranked, rows)

	key := func(i int) sortKey {
		return sortKey{ToPar: ranked[i].ToPar, Strokes: ranked[i].TotalStrokes, TeamID: ranked[i].TeamID}
	}
	sort.Slice(ranked, func(i, j int) bool { return key(i).less(key(j)) })
	assignPositions(len(ranked), key, func(i, pos int) { ranked[i].Position = pos })
	return ranked
}
