// Package config negotiates and holds the SDK session configuration:
// developer-supplied overrides merged with platform-provided values
// under an asymmetric precedence policy.
package config

// Config is the contract every named configuration record satisfies.
type Config interface {
	GetName() string
	Validate() error
}
