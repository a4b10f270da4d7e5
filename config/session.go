package config

import (
	"fmt"
	"strings"
)

// defaultCoreBundleTemplate is the templated core bundle location used
// when neither the developer nor the platform supplies one. The %s slot
// takes the negotiated SDK version, or "current" when absent.
const defaultCoreBundleTemplate = "https://cdn.arcaid.gg/core/%s/arcaid-core.min.js"

// UserSession is the platform-provided session record. A non-empty
// session token together with a true login flag is the sole readiness
// predicate.
type UserSession struct {
	LoggedIn      bool   `json:"isLoggedIn" mapstructure:"isLoggedIn"`
	WalletAddress string `json:"walletAddress" mapstructure:"walletAddress"`
	SessionToken  string `json:"sessionToken" mapstructure:"sessionToken"`
}

// Active reports whether the session satisfies the readiness predicate.
func (s UserSession) Active() bool {
	return s.LoggedIn && s.SessionToken != ""
}

// PlatformConfig is what the platform hands back during the config
// handshake. All fields are optional; a missing handshake degrades to
// the zero value.
type PlatformConfig struct {
	GameID         string      `json:"gameId" mapstructure:"gameId"`
	APIBaseURL     string      `json:"apiBaseUrl" mapstructure:"apiBaseUrl"`
	SDKVersion     string      `json:"sdkVersion" mapstructure:"sdkVersion"`
	PlatformOrigin string      `json:"platformOrigin" mapstructure:"platformOrigin"`
	CoreSdkURL     string      `json:"coreSdkUrl" mapstructure:"coreSdkUrl"`
	Session        UserSession `json:"userSession" mapstructure:"userSession"`
}

// DeveloperConfig holds developer-supplied overrides, from code or from
// the arcaid config file.
type DeveloperConfig struct {
	CoreSdkURL string `json:"coreSdkUrl" mapstructure:"coreSdkUrl"`
	APIBaseURL string `json:"apiBaseUrl" mapstructure:"apiBaseUrl"`
	SDKVersion string `json:"sdkVersion" mapstructure:"sdkVersion"`

	// PlatformURL and Transport select how the loader reaches the
	// platform. An empty PlatformURL means standalone mode.
	PlatformURL string `json:"platformUrl" mapstructure:"platformUrl"`
	Transport   string `json:"transport" mapstructure:"transport"`
}

// GetName returns the configuration name used for registration.
func (c *DeveloperConfig) GetName() string {
	return "arcaid"
}

// Validate checks the configuration parameters.
func (c *DeveloperConfig) Validate() error {
	if c.PlatformURL != "" && !strings.Contains(c.PlatformURL, "://") {
		return fmt.Errorf("platformUrl %q is not a URL", c.PlatformURL)
	}
	return nil
}

// SessionConfig is the merged, fully resolved configuration the SDK runs
// with. It is replaced wholesale on every session update; module code
// never mutates it partially.
type SessionConfig struct {
	GameID         string
	APIBaseURL     string
	SDKVersion     string
	PlatformOrigin string
	CoreSdkURL     string
	Session        UserSession
}

// Merge combines developer overrides with platform values. Platform
// session data always wins; platform API base URL and SDK version apply
// only when the developer did not explicitly set them; the developer's
// core bundle URL always wins when present.
func Merge(dev DeveloperConfig, platform PlatformConfig) SessionConfig {
	cfg := SessionConfig{
		GameID:         platform.GameID,
		APIBaseURL:     platform.APIBaseURL,
		SDKVersion:     platform.SDKVersion,
		PlatformOrigin: platform.PlatformOrigin,
		Session:        platform.Session,
	}
	if dev.APIBaseURL != "" {
		cfg.APIBaseURL = dev.APIBaseURL
	}
	if dev.SDKVersion != "" {
		cfg.SDKVersion = dev.SDKVersion
	}
	cfg.CoreSdkURL = resolveCoreBundleURL(dev, platform, cfg.SDKVersion)
	return cfg
}

// resolveCoreBundleURL applies the resolution order: developer override,
// platform value, templated default. The result is always fully
// resolved, never a placeholder.
func resolveCoreBundleURL(dev DeveloperConfig, platform PlatformConfig, version string) string {
	if dev.CoreSdkURL != "" {
		return dev.CoreSdkURL
	}
	if platform.CoreSdkURL != "" {
		return platform.CoreSdkURL
	}
	if version == "" {
		version = "current"
	}
	return fmt.Sprintf(defaultCoreBundleTemplate, version)
}
