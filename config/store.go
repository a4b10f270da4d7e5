package config

import (
	"sync"

	"github.com/arcaid/arcaid-go/codec"
	"github.com/arcaid/arcaid-go/log"
)

// ChangeHook observes every replacement of the merged session config.
// Hooks run synchronously on the goroutine applying the update.
type ChangeHook func(old, new SessionConfig)

// Store holds the live merged SessionConfig and fans out replacements to
// registered hooks. The readiness gate and the bridge both hang off
// these hooks.
type Store struct {
	mu       sync.RWMutex
	dev      DeveloperConfig
	platform PlatformConfig
	cfg      SessionConfig
	hooks    []ChangeHook
}

// NewStore merges the initial developer and platform configs.
func NewStore(dev DeveloperConfig, platform PlatformConfig) *Store {
	return &Store{
		dev:      dev,
		platform: platform,
		cfg:      Merge(dev, platform),
	}
}

// Current returns the live merged configuration.
func (s *Store) Current() SessionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// AddChangeHook registers a hook and immediately feeds it the current
// config so late registrants do not miss the initial state.
func (s *Store) AddChangeHook(h ChangeHook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, h)
	cur := s.cfg
	s.mu.Unlock()
	h(cur, cur)
}

// ApplySessionUpdate applies a session-update event payload. The merge
// is shallow and wholesale: each top-level field present in the payload
// replaces its counterpart entirely.
func (s *Store) ApplySessionUpdate(payload map[string]any) {
	if payload == nil {
		return
	}

	s.mu.Lock()
	if v, ok := payload["userSession"]; ok {
		var session UserSession
		if err := codec.Remap(v, &session); err != nil {
			log.Warn().Err(err).Msg("ignoring malformed user session update")
		} else {
			s.platform.Session = session
		}
	}
	if v, ok := payload["gameId"].(string); ok {
		s.platform.GameID = v
	}
	if v, ok := payload["apiBaseUrl"].(string); ok {
		s.platform.APIBaseURL = v
	}
	if v, ok := payload["sdkVersion"].(string); ok {
		s.platform.SDKVersion = v
	}
	if v, ok := payload["platformOrigin"].(string); ok {
		s.platform.PlatformOrigin = v
	}
	s.replaceLocked()
}

// ReplaceDeveloperConfig swaps the developer overrides and re-merges,
// used by the override file watcher.
func (s *Store) ReplaceDeveloperConfig(dev DeveloperConfig) {
	s.mu.Lock()
	s.dev = dev
	s.replaceLocked()
}

// replaceLocked re-merges and notifies hooks. Called with s.mu held;
// releases it before running hooks.
func (s *Store) replaceLocked() {
	old := s.cfg
	s.cfg = Merge(s.dev, s.platform)
	cfg := s.cfg
	hooks := make([]ChangeHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	for _, h := range hooks {
		h(old, cfg)
	}
}
