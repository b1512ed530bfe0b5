package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fairwaylive/golf-tournament/leaderboard"
	"github.com/fairwaylive/golf-tournament/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict Origin to the frontend host before exposing publicly.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub                *leaderboard.Hub
	tournamentService  services.TournamentService
	leaderboardService services.LeaderboardService
	logger             *slog.Logger
}

func NewWebSocketHandler(
	hub *leaderboard.Hub,
	tournamentService services.TournamentService,
	leaderboardService services.LeaderboardService,
	logger *slog.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                hub,
		tournamentService:  tournamentService,
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// ServeWs upgrades the connection and registers the viewer in the
// tournament's room. The joiner immediately receives the current
// leaderboard, so late joiners are never stale.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.tournamentService.GetByID(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	roomID := leaderboard.RoomID(tournamentID)
	client := leaderboard.NewClient(h.hub, conn, roomID, r.URL.Query().Get("name"))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	// Push the current state to the new viewer only; everyone else already
	// has it.
	result, err := h.leaderboardService.ComputeTournamentLeaderboard(r.Context(), tournamentID)
	if err != nil {
		h.logger.Error("initial leaderboard push failed",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		client.Notify(leaderboard.Message{
			Type:    leaderboard.EventError,
			Payload: "failed to load current leaderboard",
			RoomID:  roomID,
		})
		return
	}
	client.Notify(leaderboard.Message{
		Type: leaderboard.EventLeaderboardUpdated,
		Payload: leaderboard.LeaderboardUpdatedEvent{
			TournamentID: result.TournamentID,
			LastUpdated:  result.LastUpdated,
			Entries:      result.Entries,
		},
		RoomID: roomID,
	})
}
