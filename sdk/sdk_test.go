package sdk

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

// fakeTransport answers scripted request types and lets tests inject
// unsolicited platform events.
type fakeTransport struct {
	mu      sync.Mutex
	handler bridge.InboundReceiver
	sent    []*bridge.Envelope
	respond map[string]map[string]any
}

func (f *fakeTransport) Start(opt bridge.TransportOption) error {
	f.handler = opt.Handler
	return nil
}
func (f *fakeTransport) Stop() error     { return nil }
func (f *fakeTransport) Connected() bool { return true }

func (f *fakeTransport) Send(raw []byte) error {
	env := &bridge.Envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, env)
	payload, ok := f.respond[env.Type]
	f.mu.Unlock()
	if !ok {
		return nil
	}
	return f.inject(&bridge.Envelope{
		Source:    bridge.SourcePlatform,
		Type:      env.Type + "_RESPONSE",
		MessageID: env.MessageID,
		Payload:   payload,
	})
}

func (f *fakeTransport) inject(env *bridge.Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return f.handler.OnRecvTransportMsg(&bridge.TransportDelivery{Raw: raw})
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestSDK(t *testing.T, platform config.PlatformConfig, respond map[string]map[string]any) (*SDK, *fakeTransport) {
	t.Helper()
	tr := &fakeTransport{respond: respond}
	b := bridge.New(tr)
	require.NoError(t, tr.Start(bridge.TransportOption{Handler: b}))

	s, err := New(b, config.NewStore(config.DeveloperConfig{}, platform))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, tr
}

func activePlatform() config.PlatformConfig {
	return config.PlatformConfig{
		GameID:  "game-1",
		Session: config.UserSession{LoggedIn: true, SessionToken: "tok-1", WalletAddress: "0xabc"},
	}
}

func TestReadyResolvesOnNegotiatedSession(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), nil)
	assert.NoError(t, s.Ready(context.Background()))
	assert.True(t, s.gate.Ready())
}

func TestReadyBlocksWithoutSession(t *testing.T) {
	s, _ := newTestSDK(t, config.PlatformConfig{}, nil)
	assert.False(t, s.gate.Ready())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, s.Ready(ctx))
}

func TestSessionUpdateEventOpensGate(t *testing.T) {
	s, tr := newTestSDK(t, config.PlatformConfig{}, nil)

	require.NoError(t, tr.inject(&bridge.Envelope{
		Source: bridge.SourcePlatform,
		Type:   bridge.TypeUpdateUserSession,
		Payload: map[string]any{
			"gameId": "game-7",
			"userSession": map[string]any{
				"isLoggedIn":   true,
				"sessionToken": "tok-2",
			},
		},
	}))

	assert.NoError(t, s.Ready(context.Background()))
	assert.Equal(t, "game-7", s.Config().GameID)
	// The negotiated game id now stamps outbound envelopes.
	assert.Equal(t, "game-7", s.bridge.GameID())
}

func TestGateStaysOpenAfterLogout(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), nil)
	require.NoError(t, s.Ready(context.Background()))

	require.NoError(t, tr.inject(&bridge.Envelope{
		Source:  bridge.SourcePlatform,
		Type:    bridge.TypeUpdateUserSession,
		Payload: map[string]any{"userSession": map[string]any{"isLoggedIn": false}},
	}))

	assert.False(t, s.Config().Session.Active())
	assert.NoError(t, s.Ready(context.Background()))
}

func TestAuth(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeGetUserInfo: {"userId": "u-1", "displayName": "Ada"},
	})

	assert.True(t, s.Auth.IsLoggedIn())
	assert.Equal(t, "0xabc", s.Auth.Session().WalletAddress)

	user, err := s.Auth.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", user["displayName"])
}

func TestWallet(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeGetWalletBalance: {"balance": 12.5, "currency": "ARC"},
	})

	assert.Equal(t, "0xabc", s.Wallet.Address())

	balance, err := s.Wallet.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.5, balance["balance"])
}

func TestStats(t *testing.T) {
	s, tr := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeSubmitGameStats: {"accepted": true},
		typeGetLeaderboard:  {"entries": []any{}},
	})

	_, err := s.Stats.SubmitScore(context.Background(), 420, map[string]any{"mode": "ranked"})
	require.NoError(t, err)
	assert.Equal(t, 420.0, tr.sent[0].Payload["score"])

	_, err = s.Stats.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, tr.sent[1].Payload["limit"])
}

func TestUtilsServerTime(t *testing.T) {
	s, _ := newTestSDK(t, activePlatform(), map[string]map[string]any{
		typeGetServerTime: {"epochMs": 1700000000000.0},
	})

	now, err := s.Utils.GetServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1700000000000.0, now["epochMs"])
}
