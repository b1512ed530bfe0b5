package leaderboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylive/golf-tournament/models"
)

func newTestHub() *Hub {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	return hub
}

func register(t *testing.T, hub *Hub, room, name string) *Client {
	t.Helper()
	client := NewClient(hub, nil, room, name)
	hub.Register <- client
	return client
}

func recv(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data, ok := <-client.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func requireNoMessage(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected message: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRegisterAndRoomCount(t *testing.T) {
	t.Parallel()

	hub := newTestHub()
	room := RoomID(1)

	register(t, hub, room, "alice")
	register(t, hub, room, "bob")
	register(t, hub, RoomID(2), "carol")

	require.Eventually(t, func() bool { return hub.RoomCount(room) == 2 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return hub.RoomCount(RoomID(2)) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 0, hub.RoomCount(RoomID(3)))
}

func TestHubViewerJoinedGoesToOthersOnly(t *testing.T) {
	t.Parallel()

	hub := newTestHub()
	room := RoomID(1)

	first := register(t, hub, room, "alice")
	require.Eventually(t, func() bool { return hub.RoomCount(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	second := register(t, hub, room, "bob")

	msg := recv(t, first)
	require.Equal(t, EventViewerJoined, msg.Type)
	payload, err := json.Marshal(msg.Payload)
	require.NoError(t, err)
	var viewer ViewerEvent
	require.NoError(t, json.Unmarshal(payload, &viewer))
	require.Equal(t, "bob", viewer.UserName)
	require.Equal(t, 2, viewer.ViewerCount)

	requireNoMessage(t, second)
}

func TestHubUnregister(t *testing.T) {
	t.Parallel()

	hub := newTestHub()
	room := RoomID(1)

	stayer := register(t, hub, room, "alice")
	leaver := register(t, hub, room, "bob")
	require.Eventually(t, func() bool { return hub.RoomCount(room) == 2 }, 2*time.Second, 10*time.Millisecond)
	recv(t, stayer) // drain bob's join event

	hub.Unregister <- leaver
	require.Eventually(t, func() bool { return hub.RoomCount(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	msg := recv(t, stayer)
	require.Equal(t, EventViewerLeft, msg.Type)

	// The hub closes the leaver's send channel.
	_, ok := <-leaver.Send
	require.False(t, ok)
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	t.Parallel()

	hub := newTestHub()

	in := register(t, hub, RoomID(1), "alice")
	out := register(t, hub, RoomID(2), "bob")
	require.Eventually(t, func() bool { return hub.RoomCount(RoomID(1)) == 1 && hub.RoomCount(RoomID(2)) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(RoomID(1), Message{
		Type:    EventLeaderboardUpdated,
		Payload: LeaderboardUpdatedEvent{TournamentID: 1, Entries: []models.LeaderboardEntry{}},
		RoomID:  RoomID(1),
	})

	msg := recv(t, in)
	require.Equal(t, EventLeaderboardUpdated, msg.Type)
	require.Equal(t, RoomID(1), msg.RoomID)
	requireNoMessage(t, out)
}

func TestHubBroadcastSkipsFullClient(t *testing.T) {
	t.Parallel()

	hub := newTestHub()
	room := RoomID(1)

	slow := register(t, hub, room, "slow")
	fast := register(t, hub, room, "fast")
	require.Eventually(t, func() bool { return hub.RoomCount(room) == 2 }, 2*time.Second, 10*time.Millisecond)
	recv(t, slow) // fast's join event

	// Nobody drains the slow client; fill its buffer so the next
	// broadcast has to drop.
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("{}")
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastToRoom(room, Message{Type: EventLeaderboardUpdated, RoomID: room})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full client")
	}

	msg := recv(t, fast)
	require.Equal(t, EventLeaderboardUpdated, msg.Type)
}
