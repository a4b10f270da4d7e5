package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

func TestMakeBetLocalValidation(t *testing.T) {
	cases := []struct {
		name   string
		roomID string
		amount float64
	}{
		{"missing room", "", 5},
		{"zero amount", "room-1", 0},
		{"negative amount", "room-1", -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, tr := newTestSDK(t, activePlatform(), nil)

			res, err := s.Payments.MakeBet(context.Background(), tc.roomID, tc.amount)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			// Validation failures never touch the wire.
			assert.Zero(t, tr.sentCount())
		})
	}
}

func TestMakeBetRequiresNegotiatedGameID(t *testing.T) {
	s, tr := newTestSDK(t, config.PlatformConfig{}, nil)

	res, err := s.Payments.MakeBet(context.Background(), "room-1", 5)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Zero(t, tr.sentCount())
}

func TestMakeBetSuccess(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeMakeBet: {"betId": "bet-1"},
	})

	res, err := s.Payments.MakeBet(context.Background(), "room-1", 2.5)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "bet-1", res.Payload["betId"])

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "room-1", tr.sent[0].Payload["roomId"])
	assert.Equal(t, 2.5, tr.sent[0].Payload["amount"])
	assert.Equal(t, "game-1", tr.sent[0].GameID)
}

func TestMakeBetPlatformError(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeMakeBet: {"error": "insufficient funds"},
	})

	res, err := s.Payments.MakeBet(context.Background(), "room-1", 100)
	require.Error(t, err)
	assert.Nil(t, res)

	perr := &bridge.PlatformError{}
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "insufficient funds", perr.Message)
}
