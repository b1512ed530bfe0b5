package handlers

import (
	"net/http"
	"strconv"

	"github.com/fairwaylive/golf-tournament/repositories"
	"github.com/fairwaylive/golf-tournament/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Submit creates or updates a hole score and triggers the live broadcast
// flow for the tournament's viewers.
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.scoreService.SubmitScore(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	score, err := h.scoreService.GetScore(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListScoresFilter
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			filter.TeamID = &id
		}
	}
	if raw := r.URL.Query().Get("round_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			filter.RoundID = &id
		}
	}
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			filter.TournamentID = &id
		}
	}

	scores, err := h.scoreService.ListScores(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) GetTeamRoundScores(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundID, err := urlParamInt(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := h.scoreService.GetTeamRoundScores(r.Context(), teamID, roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.scoreService.DeleteScore(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
