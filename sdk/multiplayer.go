package sdk

import (
	"context"
	"fmt"
	"sync"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/log"
)

const (
	typeCreateRoom    = "MULTIPLAYER_CREATE_ROOM"
	typeJoinRoom      = "MULTIPLAYER_JOIN_ROOM"
	typeReconnectRoom = "MULTIPLAYER_RECONNECT_ROOM"
	typeLeaveRoom     = "MULTIPLAYER_LEAVE_ROOM"
	typeListRooms     = "MULTIPLAYER_LIST_ROOMS"
	typeSendMessage   = "MULTIPLAYER_SEND_MESSAGE"
)

// WildcardMessage subscribes a message listener to every message type.
const WildcardMessage = "*"

// EventCallback receives the payload of a room lifecycle event.
type EventCallback func(payload map[string]any)

// MessageCallback receives in-room message data. Listeners on a
// concrete message type get the raw message data; wildcard listeners
// get a {type, data} envelope.
type MessageCallback func(data any)

// Unsubscribe removes the listener it was returned for. Calling it more
// than once is a no-op.
type Unsubscribe func()

// Multiplayer manages room lifecycle and in-room messaging. It owns
// five independent listener registries keyed on inbound event types;
// room messages additionally fan out by the message type inside their
// payload, with wildcard support.
type Multiplayer struct {
	bridge *bridge.Bridge
	gate   *ReadyGate

	mu           sync.Mutex
	nextID       int
	roomUpdate   map[int]EventCallback
	gameStarted  map[int]EventCallback
	gameFinished map[int]EventCallback
	roomError    map[int]EventCallback
	message      map[string]map[int]MessageCallback
}

// NewMultiplayer creates the multiplayer module with empty registries.
func NewMultiplayer(b *bridge.Bridge, gate *ReadyGate) *Multiplayer {
	return &Multiplayer{
		bridge:       b,
		gate:         gate,
		roomUpdate:   make(map[int]EventCallback),
		gameStarted:  make(map[int]EventCallback),
		gameFinished: make(map[int]EventCallback),
		roomError:    make(map[int]EventCallback),
		message:      make(map[string]map[int]MessageCallback),
	}
}

// CreateRoom asks the platform to create a room. The response must
// carry room details.
func (m *Multiplayer) CreateRoom(ctx context.Context, opts map[string]any) (map[string]any, error) {
	if err := m.gate.Await(ctx); err != nil {
		return nil, err
	}
	payload, err := m.bridge.Request(ctx, typeCreateRoom, opts)
	if err != nil {
		return nil, err
	}
	return payload, requireRoomDetails("create room", payload)
}

// JoinRoom joins an existing room. The response must carry room details.
func (m *Multiplayer) JoinRoom(ctx context.Context, roomID string) (map[string]any, error) {
	if err := m.gate.Await(ctx); err != nil {
		return nil, err
	}
	payload, err := m.bridge.Request(ctx, typeJoinRoom, map[string]any{"roomId": roomID})
	if err != nil {
		return nil, err
	}
	return payload, requireRoomDetails("join room", payload)
}

// ReconnectRoom re-attaches to a room after a connection loss. The
// response must carry room details.
func (m *Multiplayer) ReconnectRoom(ctx context.Context, roomID string) (map[string]any, error) {
	if err := m.gate.Await(ctx); err != nil {
		return nil, err
	}
	payload, err := m.bridge.Request(ctx, typeReconnectRoom, map[string]any{"roomId": roomID})
	if err != nil {
		return nil, err
	}
	return payload, requireRoomDetails("reconnect room", payload)
}

// LeaveRoom leaves a room.
func (m *Multiplayer) LeaveRoom(ctx context.Context, roomID string) (map[string]any, error) {
	return m.bridge.Request(ctx, typeLeaveRoom, map[string]any{"roomId": roomID})
}

// ListRooms fetches the joinable rooms for this game.
func (m *Multiplayer) ListRooms(ctx context.Context) (map[string]any, error) {
	return m.bridge.Request(ctx, typeListRooms, nil)
}

func requireRoomDetails(op string, payload map[string]any) error {
	if payload == nil {
		return fmt.Errorf("%s: response missing room details", op)
	}
	if v, ok := payload["roomDetails"]; !ok || v == nil {
		return fmt.Errorf("%s: response missing room details", op)
	}
	return nil
}

// Send delivers an in-room message. Fire and forget: transport failures
// are logged, never surfaced to the caller.
func (m *Multiplayer) Send(messageType string, data any) {
	d := m.bridge.Send(typeSendMessage, map[string]any{
		"messageType": messageType,
		"messageData": data,
	})
	go func() {
		if _, err := d.Await(context.Background()); err != nil {
			log.Warn().Str("messageType", messageType).Err(err).Msg("room message not delivered")
		}
	}()
}

// OnRoomUpdate registers a listener for room roster/state updates.
func (m *Multiplayer) OnRoomUpdate(cb EventCallback) Unsubscribe {
	return m.addEventListener(&m.roomUpdate, cb)
}

// OnGameStarted registers a listener for game start events.
func (m *Multiplayer) OnGameStarted(cb EventCallback) Unsubscribe {
	return m.addEventListener(&m.gameStarted, cb)
}

// OnGameFinished registers a listener for game finish events.
func (m *Multiplayer) OnGameFinished(cb EventCallback) Unsubscribe {
	return m.addEventListener(&m.gameFinished, cb)
}

// OnRoomError registers a listener for room error events.
func (m *Multiplayer) OnRoomError(cb EventCallback) Unsubscribe {
	return m.addEventListener(&m.roomError, cb)
}

func (m *Multiplayer) addEventListener(registry *map[int]EventCallback, cb EventCallback) Unsubscribe {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	(*registry)[id] = cb
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(*registry, id)
		m.mu.Unlock()
	}
}

// OnMessage registers a listener for in-room messages of the given
// type; WildcardMessage subscribes to all types.
func (m *Multiplayer) OnMessage(messageType string, cb MessageCallback) Unsubscribe {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	reg, ok := m.message[messageType]
	if !ok {
		reg = make(map[int]MessageCallback)
		m.message[messageType] = reg
	}
	reg[id] = cb
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		if reg, ok := m.message[messageType]; ok {
			delete(reg, id)
		}
		m.mu.Unlock()
	}
}

// OnPlatformEvent dispatches multiplayer events to the matching
// registry. Events with no listeners are dropped; that is not an error.
func (m *Multiplayer) OnPlatformEvent(env *bridge.Envelope) error {
	switch env.Type {
	case bridge.TypeRoomUpdateEvent:
		m.fanOutEvent(&m.roomUpdate, env.Payload)
	case bridge.TypeGameStartedEvent:
		m.fanOutEvent(&m.gameStarted, env.Payload)
	case bridge.TypeGameFinishedEvent:
		m.fanOutEvent(&m.gameFinished, env.Payload)
	case bridge.TypeRoomErrorEvent:
		m.fanOutEvent(&m.roomError, env.Payload)
	case bridge.TypeRoomMessageEvent:
		m.fanOutMessage(env.Payload)
	}
	return nil
}

func (m *Multiplayer) fanOutEvent(registry *map[int]EventCallback, payload map[string]any) {
	m.mu.Lock()
	cbs := make([]EventCallback, 0, len(*registry))
	for _, cb := range *registry {
		cbs = append(cbs, cb)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(payload)
	}
}

// fanOutMessage branches on the message type inside the payload: the
// matching-type registry receives the raw message data, the wildcard
// registry receives a {type, data} envelope.
func (m *Multiplayer) fanOutMessage(payload map[string]any) {
	messageType, _ := payload["messageType"].(string)
	if messageType == "" {
		return
	}
	data := payload["messageData"]

	m.mu.Lock()
	typed := make([]MessageCallback, 0, len(m.message[messageType]))
	for _, cb := range m.message[messageType] {
		typed = append(typed, cb)
	}
	wild := make([]MessageCallback, 0, len(m.message[WildcardMessage]))
	for _, cb := range m.message[WildcardMessage] {
		wild = append(wild, cb)
	}
	m.mu.Unlock()

	for _, cb := range typed {
		cb(data)
	}
	for _, cb := range wild {
		cb(map[string]any{"type": messageType, "data": data})
	}
}
