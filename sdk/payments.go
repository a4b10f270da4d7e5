package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
)

const typeMakeBet = "MAKE_BET"

// BetResult is the structured outcome of a bet. Local validation
// failures come back as Success=false with a message, not as an error;
// transport and platform failures come back as an error.
type BetResult struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Payload map[string]any `json:"-"`
}

// Payments places bets against multiplayer rooms.
type Payments struct {
	bridge *bridge.Bridge
	store  *config.Store
}

// MakeBet places a bet of amount on the given room. Validation failures
// (missing room, non-positive amount, no negotiated game id) return
// synchronously without any transport traffic. Zero amounts are
// rejected like negative ones.
func (p *Payments) MakeBet(ctx context.Context, roomID string, amount float64) (*BetResult, error) {
	if roomID == "" {
		return &BetResult{Success: false, Error: "roomId is required"}, nil
	}
	if amount <= 0 {
		return &BetResult{Success: false, Error: "bet amount must be a positive number"}, nil
	}
	if p.store.Current().GameID == "" {
		return &BetResult{Success: false, Error: "no game id negotiated yet"}, nil
	}

	payload, err := p.bridge.Request(ctx, typeMakeBet, map[string]any{
		"roomId": roomID,
		"amount": amount,
	})
	if err != nil {
		return nil, err
	}
	return &BetResult{Success: true, Payload: payload}, nil
}
