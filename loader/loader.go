// Package loader bootstraps the SDK: it establishes the platform
// transport with bounded retry, negotiates the session configuration
// and assembles the capability modules. Init is process-wide and
// idempotent.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/config"
	"github.com/arcaid/arcaid-go/future"
	"github.com/arcaid/arcaid-go/log"
	"github.com/arcaid/arcaid-go/sdk"
)

const (
	defaultTransport       = "websocket"
	defaultConnectAttempts = 3
	defaultConnectBackoff  = time.Second
)

// Options configures bootstrap. The zero value starts in standalone
// mode: no platform link, every request fails until one exists.
type Options struct {
	// ConfigPath points at the developer override file (yaml). Optional.
	ConfigPath string

	// Developer holds overrides supplied in code. Non-zero fields win
	// over the override file.
	Developer config.DeveloperConfig

	// TransportConfig is passed through to the transport factory.
	TransportConfig map[string]any

	// ConnectAttempts bounds transport establishment retries (default 3).
	ConnectAttempts int

	// ConnectBackoff is the fixed delay between attempts (default 1s).
	ConnectBackoff time.Duration

	// WatchOverrides hot-reloads the override file while running.
	WatchOverrides bool
}

var (
	initMu     sync.Mutex
	initFuture *future.Deferred[*sdk.SDK]
)

// Init bootstraps the SDK and blocks for the result. Re-entrant calls
// share the first call's outcome; no second handshake or connection is
// made.
func Init(ctx context.Context, opts Options) (*sdk.SDK, error) {
	return InitAsync(opts).Await(ctx)
}

// InitAsync starts bootstrap (once) and returns the shared future.
func InitAsync(opts Options) *future.Deferred[*sdk.SDK] {
	initMu.Lock()
	defer initMu.Unlock()
	if initFuture != nil {
		return initFuture
	}
	initFuture = future.New[*sdk.SDK]()
	go bootstrap(opts, initFuture)
	return initFuture
}

// Reset discards the stored initialization state. Intended for tests.
func Reset() {
	initMu.Lock()
	initFuture = nil
	initMu.Unlock()
}

func bootstrap(opts Options, d *future.Deferred[*sdk.SDK]) {
	dev := loadDeveloperConfig(opts)

	var tr bridge.Transport
	if dev.PlatformURL != "" {
		name := dev.Transport
		if name == "" {
			name = defaultTransport
		}
		tcfg := map[string]any{}
		for k, v := range opts.TransportConfig {
			tcfg[k] = v
		}
		tcfg["url"] = dev.PlatformURL

		t, err := bridge.NewTransport(name, tcfg)
		if err != nil {
			d.Reject(err)
			return
		}
		tr = t
	}

	b := bridge.New(tr)
	if tr != nil {
		if err := connectWithRetry(tr, b, opts); err != nil {
			d.Reject(err)
			return
		}
	}

	platform := config.Negotiate(context.Background(), b)
	store := config.NewStore(dev, platform)

	inst, err := sdk.New(b, store)
	if err != nil {
		d.Reject(err)
		return
	}

	if opts.WatchOverrides && opts.ConfigPath != "" {
		if _, werr := config.WatchOverrides(opts.ConfigPath, store); werr != nil {
			log.Warn().Err(werr).Str("path", opts.ConfigPath).Msg("override watching disabled")
		}
	}

	log.Info().
		Str("gameId", store.Current().GameID).
		Bool("connected", tr != nil).
		Msg("sdk initialized")
	d.Resolve(inst)
}

// loadDeveloperConfig combines the override file with in-code overrides;
// non-zero in-code fields win.
func loadDeveloperConfig(opts Options) config.DeveloperConfig {
	dev := opts.Developer
	if opts.ConfigPath == "" {
		return dev
	}
	loaded, err := config.LoadDeveloperConfig(opts.ConfigPath)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.ConfigPath).Msg("override file not loaded")
		return dev
	}
	if dev.CoreSdkURL != "" {
		loaded.CoreSdkURL = dev.CoreSdkURL
	}
	if dev.APIBaseURL != "" {
		loaded.APIBaseURL = dev.APIBaseURL
	}
	if dev.SDKVersion != "" {
		loaded.SDKVersion = dev.SDKVersion
	}
	if dev.PlatformURL != "" {
		loaded.PlatformURL = dev.PlatformURL
	}
	if dev.Transport != "" {
		loaded.Transport = dev.Transport
	}
	return loaded
}

// connectWithRetry starts the transport with a bounded number of
// attempts and a fixed backoff between them.
func connectWithRetry(tr bridge.Transport, handler bridge.InboundReceiver, opts Options) error {
	attempts := opts.ConnectAttempts
	if attempts <= 0 {
		attempts = defaultConnectAttempts
	}
	backoff := opts.ConnectBackoff
	if backoff <= 0 {
		backoff = defaultConnectBackoff
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(backoff)
		}
		if err = tr.Start(bridge.TransportOption{Handler: handler}); err == nil {
			return nil
		}
		log.Warn().Int("attempt", i+1).Err(err).Msg("platform connection failed")
	}
	return fmt.Errorf("connect to platform after %d attempts: %w", attempts, err)
}
