package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcaid/arcaid-go/bridge"
)

func TestRoomLifecycleRequests(t *testing.T) {
	details := map[string]any{"roomDetails": map[string]any{"roomId": "room-1", "players": 1.0}}
	s, tr := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeCreateRoom:    details,
		typeJoinRoom:      details,
		typeReconnectRoom: details,
		typeLeaveRoom:     {"left": true},
		typeListRooms:     {"rooms": []any{}},
	})
	ctx := context.Background()

	payload, err := s.Multiplayer.CreateRoom(ctx, map[string]any{"maxPlayers": 4})
	require.NoError(t, err)
	assert.NotNil(t, payload["roomDetails"])
	assert.Equal(t, 4.0, tr.sent[0].Payload["maxPlayers"])

	_, err = s.Multiplayer.JoinRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "room-1", tr.sent[1].Payload["roomId"])

	_, err = s.Multiplayer.ReconnectRoom(ctx, "room-1")
	require.NoError(t, err)

	_, err = s.Multiplayer.LeaveRoom(ctx, "room-1")
	require.NoError(t, err)

	_, err = s.Multiplayer.ListRooms(ctx)
	require.NoError(t, err)
}

func TestRoomResponseWithoutDetailsFails(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeCreateRoom: {"roomId": "room-1"},
	})

	_, err := s.Multiplayer.CreateRoom(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room details")
}

func TestRoomEventFanOut(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), nil)

	var updates, errors []map[string]any
	s.Multiplayer.OnRoomUpdate(func(p map[string]any) { updates = append(updates, p) })
	s.Multiplayer.OnRoomError(func(p map[string]any) { errors = append(errors, p) })

	require.NoError(t, tr.inject(&bridge.Envelope{
		Source:  bridge.SourcePlatform,
		Type:    bridge.TypeRoomUpdateEvent,
		Payload: map[string]any{"players": 3.0},
	}))

	require.Len(t, updates, 1)
	assert.Equal(t, 3.0, updates[0]["players"])
	assert.Empty(t, errors)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), nil)

	var calls int
	off := s.Multiplayer.OnGameStarted(func(map[string]any) { calls++ })

	event := &bridge.Envelope{Source: bridge.SourcePlatform, Type: bridge.TypeGameStartedEvent}
	require.NoError(t, tr.inject(event))
	assert.Equal(t, 1, calls)

	off()
	off()
	require.NoError(t, tr.inject(event))
	assert.Equal(t, 1, calls)
}

func TestRoomMessageFanOut(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), nil)

	var typed []any
	var wild []any
	s.Multiplayer.OnMessage("PLAYER_MOVE", func(data any) { typed = append(typed, data) })
	s.Multiplayer.OnMessage(WildcardMessage, func(data any) { wild = append(wild, data) })

	require.NoError(t, tr.inject(&bridge.Envelope{
		Source: bridge.SourcePlatform,
		Type:   bridge.TypeRoomMessageEvent,
		Payload: map[string]any{
			"messageType": "PLAYER_MOVE",
			"messageData": map[string]any{"x": 1.0},
		},
	}))

	// Typed listeners get the raw message data.
	require.Len(t, typed, 1)
	assert.Equal(t, map[string]any{"x": 1.0}, typed[0])

	// Wildcard listeners get a {type, data} envelope.
	require.Len(t, wild, 1)
	env, ok := wild[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PLAYER_MOVE", env["type"])
	assert.Equal(t, map[string]any{"x": 1.0}, env["data"])

	// A different message type reaches only the wildcard listener.
	require.NoError(t, tr.inject(&bridge.Envelope{
		Source: bridge.SourcePlatform,
		Type:   bridge.TypeRoomMessageEvent,
		Payload: map[string]any{
			"messageType": "CHAT",
			"messageData": "hello",
		},
	}))
	assert.Len(t, typed, 1)
	assert.Len(t, wild, 2)
}

func TestSendRoomMessage(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeSendMessage: {"delivered": true},
	})

	s.Multiplayer.Send("PLAYER_MOVE", map[string]any{"x": 2})

	require.Len(t, tr.sent, 1)
	assert.Equal(t, typeSendMessage, tr.sent[0].Type)
	assert.Equal(t, "PLAYER_MOVE", tr.sent[0].Payload["messageType"])
}
