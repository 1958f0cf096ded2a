package ivaltauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/vksharma7664/ivaltauth/assertion"
)

// APIConfig configures the remote push-verification endpoint.
type APIConfig struct {
	// BaseURL is the verification service root. Defaults to the hosted
	// service when empty.
	BaseURL string

	// Key is the tenant API key sent on every request. Required unless
	// a custom Verifier is injected.
	Key string

	// Timeout bounds each individual HTTP call.
	Timeout time.Duration

	// PollInterval is the advisory waiting-page refresh cadence handed
	// back to the host. The engine never sleeps on it.
	PollInterval time.Duration
}

// AuthConfig configures the authentication flow.
type AuthConfig struct {
	// MaxPollAttempts is the status poll budget per challenge.
	MaxPollAttempts int

	// ChallengeTTL is the wall-clock ceiling for an in-flight
	// challenge. Zero disables the ceiling and leaves only the poll
	// budget.
	ChallengeTTL time.Duration
}

// EnrollmentConfig configures the enrollment flow.
type EnrollmentConfig struct {
	// VerificationTTL is the wall-clock ceiling for number
	// verification.
	VerificationTTL time.Duration

	// CredentialLabel is the display label stored on new credentials.
	CredentialLabel string
}

// AssertionConfig configures optional signed approval tokens.
type AssertionConfig struct {
	// Enabled turns on assertion issuance after approved logins.
	Enabled bool

	// Signing holds the key material and token policy.
	Signing assertion.Config
}

// AuditConfig configures the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int

	// DropIfFull drops events instead of blocking the flow when the
	// buffer is saturated. Dropped counts are observable.
	DropIfFull bool
}

// MetricsConfig configures in-process metrics collection.
type MetricsConfig struct {
	Enabled bool

	// EnableLatencyHistograms also records status check latency
	// buckets.
	EnableLatencyHistograms bool
}

// Config is the full engine configuration. Zero values are filled in
// from defaultConfig by the Builder.
type Config struct {
	API        APIConfig
	Auth       AuthConfig
	Enrollment EnrollmentConfig
	Assertion  AssertionConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:      "https://api.ivalt.com",
			Timeout:      300 * time.Second,
			PollInterval: 2 * time.Second,
		},
		Auth: AuthConfig{
			MaxPollAttempts: 30,
			ChallengeTTL:    60 * time.Second,
		},
		Enrollment: EnrollmentConfig{
			VerificationTTL: 60 * time.Second,
			CredentialLabel: "iVALT Authenticator",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.API.Timeout < 0 {
		return errors.New("config: api timeout must not be negative")
	}
	if c.API.PollInterval < 0 {
		return errors.New("config: poll interval must not be negative")
	}
	if c.Auth.MaxPollAttempts <= 0 {
		return errors.New("config: max poll attempts must be positive")
	}
	if c.Auth.ChallengeTTL < 0 {
		return errors.New("config: challenge ttl must not be negative")
	}
	if c.Enrollment.VerificationTTL <= 0 {
		return errors.New("config: verification ttl must be positive")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("config: audit buffer size must be positive")
	}
	if c.Assertion.Enabled {
		if err := c.Assertion.Signing.Validate(); err != nil {
			return fmt.Errorf("config: assertion: %w", err)
		}
	}
	return nil
}

// applyDefaults fills unset fields so partial configurations behave.
func (c Config) applyDefaults() Config {
	def := defaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = def.API.Timeout
	}
	if c.API.PollInterval == 0 {
		c.API.PollInterval = def.API.PollInterval
	}
	if c.Auth.MaxPollAttempts == 0 {
		c.Auth.MaxPollAttempts = def.Auth.MaxPollAttempts
	}
	if c.Enrollment.VerificationTTL == 0 {
		c.Enrollment.VerificationTTL = def.Enrollment.VerificationTTL
	}
	if c.Enrollment.CredentialLabel == "" {
		c.Enrollment.CredentialLabel = def.Enrollment.CredentialLabel
	}
	if c.Audit.Enabled && c.Audit.BufferSize == 0 {
		c.Audit.BufferSize = def.Audit.BufferSize
	}
	return c
}
