package handlers

import (
	"net/http"
	"time"

	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/services"
)

type RoundHandler struct {
	roundService services.RoundService
}

func NewRoundHandler(roundService services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

type roundInput struct {
	TournamentID int       `json:"tournament_id"`
	RoundNumber  int       `json:"round_number"`
	Date         time.Time `json:"date"`
}

func (h *RoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input roundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round := &models.Round{
		TournamentID: input.TournamentID,
		RoundNumber:  input.RoundNumber,
		Date:         input.Date,
	}
	if err := h.roundService.Create(r.Context(), round); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := h.roundService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.roundService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
