package handlers

import (
	"net/http"

	"github.com/fairwaylive/golf-tournament/services"
)

const defaultSummaryTop = 3

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetTournamentLeaderboard returns the full ranked leaderboard; 404 when
// the tournament does not exist.
func (h *LeaderboardHandler) GetTournamentLeaderboard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.leaderboardService.ComputeTournamentLeaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRoundLeaderboard returns that round's ranked rows; a missing round or
// a round without scores is an empty list, not an error.
func (h *LeaderboardHandler) GetRoundLeaderboard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundNumber, err := urlParamInt(r, "roundNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.leaderboardService.ComputeRoundLeaderboard(r.Context(), tournamentID, roundNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"entries": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeaderboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	topN := queryParamInt(r, "top", defaultSummaryTop)

	summary, err := h.leaderboardService.Summary(r.Context(), tournamentID, topN)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeaderboardHandler) GetTeamWindow(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	window := queryParamInt(r, "window", 2)

	result, err := h.leaderboardService.TeamWindow(r.Context(), tournamentID, teamID, window)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
