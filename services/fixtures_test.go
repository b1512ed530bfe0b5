package services

import (
	"context"
	"sort"
	"sync"

	"github.com/fairwaylive/golf-tournament/leaderboard"
	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
)

// fixture is a shared in-memory dataset the fake repositories read and
// write, standing in for the database in service tests.
type fixture struct {
	tournaments map[int]models.Tournament
	teams       map[int]models.Team
	rounds      map[int]models.Round
	scores      map[int]models.Score
	nextScoreID int
}

func newFixture() *fixture {
	return &fixture{
		tournaments: make(map[int]models.Tournament),
		teams:       make(map[int]models.Team),
		rounds:      make(map[int]models.Round),
		scores:      make(map[int]models.Score),
		nextScoreID: 1,
	}
}

func (f *fixture) addTournament(t models.Tournament) { f.tournaments[t.ID] = t }
func (f *fixture) addTeam(t models.Team)             { f.teams[t.ID] = t }
func (f *fixture) addRound(r models.Round)           { f.rounds[r.ID] = r }

func (f *fixture) addScore(s models.Score) {
	s.ID = f.nextScoreID
	f.nextScoreID++
	f.scores[s.ID] = s
}

type fakeTournamentRepo struct{ f *fixture }

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = len(r.f.tournaments) + 1
	r.f.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, _ repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.f.tournaments))
	for _, t := range r.f.tournaments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	if _, ok := r.f.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.f.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	t, ok := r.f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	r.f.tournaments[id] = t
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.f.tournaments, id)
	return nil
}

type fakeTeamRepo struct{ f *fixture }

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	t.ID = len(r.f.teams) + 1
	r.f.teams[t.ID] = *t
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := r.f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Team, error) {
	var out []models.Team
	for _, t := range r.f.teams {
		if t.TournamentID == tournamentID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, t *models.Team) error {
	if _, ok := r.f.teams[t.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.f.teams[t.ID] = *t
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.f.teams, id)
	return nil
}

type fakeRoundRepo struct{ f *fixture }

func (r *fakeRoundRepo) Create(_ context.Context, round *models.Round) error {
	round.ID = len(r.f.rounds) + 1
	r.f.rounds[round.ID] = *round
	return nil
}

func (r *fakeRoundRepo) GetByID(_ context.Context, id int) (*models.Round, error) {
	round, ok := r.f.rounds[id]
	if !ok {
		return nil, repositories.ErrRoundNotFound
	}
	return &round, nil
}

func (r *fakeRoundRepo) GetByTournamentAndNumber(_ context.Context, tournamentID, roundNumber int) (*models.Round, error) {
	for _, round := range r.f.rounds {
		if round.TournamentID == tournamentID && round.RoundNumber == roundNumber {
			return &round, nil
		}
	}
	return nil, repositories.ErrRoundNotFound
}

func (r *fakeRoundRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Round, error) {
	var out []models.Round
	for _, round := range r.f.rounds {
		if round.TournamentID == tournamentID {
			out = append(out, round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (r *fakeRoundRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.f.rounds[id]; !ok {
		return repositories.ErrRoundNotFound
	}
	delete(r.f.rounds, id)
	return nil
}

type fakeScoreRepo struct{ f *fixture }

func (r *fakeScoreRepo) Upsert(_ context.Context, score *models.Score) error {
	for id, existing := range r.f.scores {
		if existing.TeamID == score.TeamID && existing.RoundID == score.RoundID && existing.HoleNumber == score.HoleNumber {
			existing.Strokes = score.Strokes
			existing.Par = score.Par
			r.f.scores[id] = existing
			score.ID = id
			return nil
		}
	}
	score.ID = r.f.nextScoreID
	r.f.nextScoreID++
	r.f.scores[score.ID] = *score
	return nil
}

func (r *fakeScoreRepo) GetByID(_ context.Context, id int) (*models.Score, error) {
	s, ok := r.f.scores[id]
	if !ok {
		return nil, repositories.ErrScoreNotFound
	}
	return &s, nil
}

func (r *fakeScoreRepo) List(_ context.Context, filter repositories.ListScoresFilter) ([]models.Score, error) {
	var out []models.Score
	for _, s := range r.f.scores {
		if filter.TeamID != nil && s.TeamID != *filter.TeamID {
			continue
		}
		if filter.RoundID != nil && s.RoundID != *filter.RoundID {
			continue
		}
		if filter.TournamentID != nil && s.TournamentID != *filter.TournamentID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeScoreRepo) ListByTeamAndRound(ctx context.Context, teamID, roundID int) ([]models.Score, error) {
	return r.List(ctx, repositories.ListScoresFilter{TeamID: &teamID, RoundID: &roundID})
}

func (r *fakeScoreRepo) ListByRound(ctx context.Context, roundID int) ([]models.Score, error) {
	return r.List(ctx, repositories.ListScoresFilter{RoundID: &roundID})
}

func (r *fakeScoreRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error) {
	return r.List(ctx, repositories.ListScoresFilter{TournamentID: &tournamentID})
}

func (r *fakeScoreRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.f.scores[id]; !ok {
		return repositories.ErrScoreNotFound
	}
	delete(r.f.scores, id)
	return nil
}

// recordingBroadcaster captures everything a service fans out, in order.
type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []leaderboard.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message leaderboard.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	message.RoomID = roomID
	b.messages = append(b.messages, message)
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Type
	}
	return out
}
