package bridge

import (
	"fmt"
	"strings"
)

// Source tags carried in every envelope. Inbound messages with a foreign
// source tag are dropped at the boundary.
const (
	SourceSDK      = "ARCAID_SDK"
	SourceLoader   = "ARCAID_SDK_LOADER"
	SourcePlatform = "ARCAID_PLATFORM"
)

// Message types understood by the SDK itself. Capability modules define
// their own request types on top.
const (
	TypePlatformConfigRequest = "REQUEST_ARCAID_PLATFORM_CONFIG"
	TypeUpdateUserSession     = "ARCAID_UPDATE_USER_SESSION"

	TypeRoomUpdateEvent   = "MULTIPLAYER_ROOM_UPDATE_EVENT"
	TypeGameStartedEvent  = "MULTIPLAYER_GAME_STARTED_EVENT"
	TypeGameFinishedEvent = "MULTIPLAYER_GAME_FINISHED_EVENT"
	TypeRoomErrorEvent    = "MULTIPLAYER_ROOM_ERROR_EVENT"
	TypeRoomMessageEvent  = "MULTIPLAYER_ROOM_MESSAGE_EVENT"
)

// Event type prefixes used for receiver routing.
const (
	PrefixPlatform    = "ARCAID_"
	PrefixMultiplayer = "MULTIPLAYER_"
)

// Envelope is the structured wire message exchanged with the platform.
// Payload shapes are opaque to the bridge; it only inspects the error
// field for failure classification.
type Envelope struct {
	Source    string         `json:"source,omitempty"`
	Type      string         `json:"type"`
	MessageID string         `json:"messageId,omitempty"`
	GameID    string         `json:"gameId,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// PlatformError is a platform-signalled failure: either a non-null
// payload error field or a failure-suffixed message type.
type PlatformError struct {
	Type    string
	Message string
	Payload map[string]any
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("platform error: %s", e.Type)
}

// PayloadError returns the platform-signalled failure carried in the
// payload's error field, or nil. An explicit error field takes priority
// over type-name heuristics.
func (e *Envelope) PayloadError() *PlatformError {
	if e.Payload == nil {
		return nil
	}
	v, ok := e.Payload["error"]
	if !ok || v == nil {
		return nil
	}
	msg, ok := v.(string)
	if !ok {
		msg = fmt.Sprintf("%v", v)
	}
	return &PlatformError{Type: e.Type, Message: msg, Payload: e.Payload}
}

var errTypeSuffixes = []string{"_ERROR", "_FAILED", "_ERROR_RESPONSE"}

// IsErrorType reports whether a message type name signals failure.
func IsErrorType(msgType string) bool {
	for _, suffix := range errTypeSuffixes {
		if strings.HasSuffix(msgType, suffix) {
			return true
		}
	}
	return false
}
