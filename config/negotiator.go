package config

import (
	"context"
	"errors"
	"time"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/codec"
	"github.com/arcaid/arcaid-go/log"
)

// HandshakeTimeout bounds the wait for the platform config response.
const HandshakeTimeout = 5 * time.Second

// Negotiate performs the startup config handshake over the bridge. On
// timeout, missing connection, or a malformed reply it logs and returns
// an empty platform config: degraded startup, never fatal.
func Negotiate(ctx context.Context, b *bridge.Bridge) PlatformConfig {
	d := b.Send(bridge.TypePlatformConfigRequest, map[string]any{},
		bridge.WithSource(bridge.SourceLoader),
		bridge.WithTimeout(HandshakeTimeout),
	)
	payload, err := d.Await(ctx)
	if err != nil {
		if errors.Is(err, bridge.ErrNotConnected) {
			log.Info().Msg("no platform connection, using default config")
		} else {
			log.Warn().Err(err).Msg("platform config handshake failed, using default config")
		}
		return PlatformConfig{}
	}

	var pc PlatformConfig
	if err := codec.Remap(payload, &pc); err != nil {
		log.Warn().Err(err).Msg("malformed platform config, using default config")
		return PlatformConfig{}
	}
	return pc
}
