package goPurse

import "errors"

// Config groups the tunables of an engine. Instances are treated as
// immutable after [Builder.Build]; the builder clones them on the way in
// and out.
type Config struct {
	Purse   PurseConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
PURSE CONFIG
====================================
*/

// PurseConfig bounds the purse an engine builds.
type PurseConfig struct {
	// Cap is the maximum balance the purse may ever hold.
	Cap float64
	// OperationBudget is the number of successful credit/debit operations
	// the purse accepts over its lifetime.
	OperationBudget int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull makes Emit non-blocking: events beyond the buffer are
	// counted as dropped instead of stalling the operation path.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Purse: PurseConfig{
			Cap:             100,
			OperationBudget: 100,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone point exists so future
	// reference-typed fields keep the immutability contract.
	return cfg
}

// Validate rejects configurations the engine cannot honor. The purse
// constructor itself stays permissive; validation lives only on this
// surface.
func (c *Config) Validate() error {
	if c.Purse.Cap < 0 {
		return errors.New("purse cap must not be negative")
	}
	if c.Purse.OperationBudget < 0 {
		return errors.New("purse operation budget must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}
