package ivaltauth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vksharma7664/ivaltauth/assertion"
	"github.com/vksharma7664/ivaltauth/credstore"
	"github.com/vksharma7664/ivaltauth/ivalt"
)

// Builder assembles an Engine. Configure it with the WithX methods and
// call Build exactly once.
type Builder struct {
	config Config

	verifier   Verifier
	creds      credstore.Store
	auditSink  AuditSink
	logger     *slog.Logger
	httpClient *http.Client

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Zero fields are filled
// in with defaults at Build time.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithAPIKey sets the remote service API key.
func (b *Builder) WithAPIKey(key string) *Builder {
	b.config.API.Key = key
	return b
}

// WithVerifier injects a custom Verifier, replacing the built-in HTTP
// client. Intended for tests and alternative transports.
func (b *Builder) WithVerifier(v Verifier) *Builder {
	b.verifier = v
	return b
}

// WithCredentialStore injects the credential persistence backend.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.creds = store
	return b
}

// WithAuditSink injects the sink the audit dispatcher fans out to.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger injects a structured logger for engine diagnostics.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithHTTPClient overrides the HTTP client used by the built-in
// verifier. Ignored when a custom Verifier is injected.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithMetricsEnabled toggles in-process metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles status check latency buckets.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the dependencies and
// returns the ready engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.creds == nil {
		return nil, errors.New("credential store required")
	}

	verifier := b.verifier
	if verifier == nil {
		client, err := ivalt.NewClient(ivalt.Config{
			BaseURL:    cfg.API.BaseURL,
			APIKey:     cfg.API.Key,
			Timeout:    cfg.API.Timeout,
			HTTPClient: b.httpClient,
		})
		if err != nil {
			return nil, err
		}
		verifier = client
	}

	var assertionManager *assertion.Manager
	if cfg.Assertion.Enabled {
		manager, err := assertion.NewManager(cfg.Assertion.Signing)
		if err != nil {
			return nil, err
		}
		assertionManager = manager
	}

	engine := &Engine{
		config:    cfg,
		verifier:  verifier,
		creds:     b.creds,
		assertion: assertionManager,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		logger:    b.logger,
	}

	b.built = true
	return engine, nil
}
