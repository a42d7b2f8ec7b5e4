package config

import "strings"

// RetryBackoffMode enumerates supported backoff strategies for retries.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// NormalizeRetryBackoff converts arbitrary user input (case-insensitive) into a typed mode, returning empty string for unknown.
func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RetryBackoffFixed):
		return RetryBackoffFixed
	case string(RetryBackoffLinear):
		return RetryBackoffLinear
	case string(RetryBackoffExponential):
		return RetryBackoffExponential
	default:
		return ""
	}
}

// RetryConfig controls retries of transient listing and catalog fetch failures.
type RetryConfig struct {
	MaxRetries   *int             `toml:"max-retries" yaml:"max-retries"`
	Backoff      RetryBackoffMode `toml:"backoff" yaml:"backoff"`
	InitialDelay Duration         `toml:"initial-delay" yaml:"initial-delay"`
	MaxDelay     Duration         `toml:"max-delay" yaml:"max-delay"`
}

// Retries returns the configured retry count, or -1 when unset.
func (r RetryConfig) Retries() int {
	if r.MaxRetries == nil {
		return -1
	}
	return *r.MaxRetries
}
