package goPurse

import (
	"errors"

	"github.com/MrEthical07/goPurse/random"
	"github.com/google/uuid"
)

// Builder assembles an [Engine]. A builder is single-use: Build succeeds at
// most once per instance.
type Builder struct {
	config Config

	source    random.Source
	gate      CodeGate
	auditSink AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCap sets the purse cap.
func (b *Builder) WithCap(cap float64) *Builder {
	b.config.Purse.Cap = cap
	return b
}

// WithOperationBudget sets the purse operation budget.
func (b *Builder) WithOperationBudget(budget int) *Builder {
	b.config.Purse.OperationBudget = budget
	return b
}

// WithRandomSource sets the source used to generate the secret code when no
// external gate is supplied. Defaults to the crypto/rand source.
func (b *Builder) WithRandomSource(src random.Source) *Builder {
	b.source = src
	return b
}

// WithGate supplies an external secret-code gate. The engine then performs
// no code generation and cannot reveal a code.
func (b *Builder) WithGate(gate CodeGate) *Builder {
	b.gate = gate
	return b
}

// WithAuditSink sets the sink receiving audit events. Audit must also be
// enabled in the config to take effect.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles counter recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the debit latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and assembles the engine: secret code
// (generated unless an external gate was supplied), purse, metrics, and the
// audit dispatcher.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- SECRET CODE --------
	gate := b.gate
	var code *SecretCode
	if gate == nil {
		src := b.source
		if src == nil {
			src = random.NewCrypto()
		}
		code = CreateCode(src)
		gate = code
	}

	// -------- ENGINE --------
	engine := &Engine{
		config:  cfg,
		purseID: uuid.NewString(),
		purse:   NewPurse(cfg.Purse.Cap, cfg.Purse.OperationBudget, gate),
		gate:    gate,
		code:    code,
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	b.built = true
	return engine, nil
}
