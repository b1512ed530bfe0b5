package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/services"
)

type stubLeaderboardService struct {
	result  *models.LeaderboardResult
	rows    []models.TeamRoundScore
	summary *models.LeaderboardSummary
	window  *models.TeamPositionWindow
	err     error

	lastTopN   int
	lastWindow int
}

func (s *stubLeaderboardService) ComputeTournamentLeaderboard(_ context.Context, _ int) (*models.LeaderboardResult, error) {
	return s.result, s.err
}

func (s *stubLeaderboardService) ComputeRoundLeaderboard(_ context.Context, _, _ int) ([]models.TeamRoundScore, error) {
	return s.rows, s.err
}

func (s *stubLeaderboardService) Summary(_ context.Context, _, topN int) (*models.LeaderboardSummary, error) {
	s.lastTopN = topN
	return s.summary, s.err
}

func (s *stubLeaderboardService) TeamWindow(_ context.Context, _, _, window int) (*models.TeamPositionWindow, error) {
	s.lastWindow = window
	return s.window, s.err
}

func newLeaderboardRouter(stub *stubLeaderboardService) *chi.Mux {
	handler := NewLeaderboardHandler(stub)
	router := chi.NewRouter()
	router.Route("/leaderboard", func(r chi.Router) {
		r.Get("/tournament/{tournamentID}", handler.GetTournamentLeaderboard)
		r.Get("/tournament/{tournamentID}/round/{roundNumber}", handler.GetRoundLeaderboard)
		r.Get("/tournament/{tournamentID}/summary", handler.GetSummary)
		r.Get("/tournament/{tournamentID}/team/{teamID}", handler.GetTeamWindow)
	})
	return router
}

func doGet(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetTournamentLeaderboard(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{
		result: &models.LeaderboardResult{
			TournamentID:   1,
			TournamentName: "Spring Invitational",
			RoundCount:     2,
			LastUpdated:    time.Now().UTC(),
			Entries: []models.LeaderboardEntry{
				{TeamID: 1, TeamName: "Albatross", Position: 1, TotalToPar: -1, TotalStrokes: 7},
			},
		},
	}

	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.LeaderboardResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "Spring Invitational", result.TournamentName)
	require.Len(t, result.Entries, 1)
	require.Equal(t, 1, result.Entries[0].Position)
}

func TestGetTournamentLeaderboardNotFound(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{err: services.ErrTournamentNotFound}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/42")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTournamentLeaderboardBadID(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/nope")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoundLeaderboardEmpty(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{rows: []models.TeamRoundScore{}}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/1/round/9")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []models.TeamRoundScore `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Entries)
	require.Empty(t, body.Entries)
}

func TestGetRoundLeaderboard(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{rows: []models.TeamRoundScore{
		{TeamID: 2, TeamName: "Bogeymen", Position: 1, RoundNumber: 1, TotalStrokes: 36, ToPar: 0},
	}}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/1/round/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []models.TeamRoundScore `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 1)
	require.Equal(t, "Bogeymen", body.Entries[0].TeamName)
}

func TestGetSummaryTopQueryParam(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{summary: &models.LeaderboardSummary{TournamentID: 1}}
	router := newLeaderboardRouter(stub)

	rec := doGet(t, router, "/leaderboard/tournament/1/summary?top=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, stub.lastTopN)

	// Absent or junk values fall back to the default.
	rec = doGet(t, router, "/leaderboard/tournament/1/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, defaultSummaryTop, stub.lastTopN)
}

func TestGetTeamWindow(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{window: &models.TeamPositionWindow{
		TournamentID: 1, TeamID: 3, Position: 2, TotalTeams: 3,
	}}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/1/team/3?window=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, stub.lastWindow)

	var window models.TeamPositionWindow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &window))
	require.Equal(t, 2, window.Position)
}

func TestGetTeamWindowUnknownTeam(t *testing.T) {
	t.Parallel()

	stub := &stubLeaderboardService{err: services.ErrTeamNotFound}
	rec := doGet(t, newLeaderboardRouter(stub), "/leaderboard/tournament/1/team/99")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
