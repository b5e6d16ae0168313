package goPurse

import (
	"context"
	"errors"
	"time"
)

// Engine wraps one purse and its secret-code gate with auditing and
// metrics. Construct it through [Builder.Build].
//
// The underlying purse keeps the single-threaded semantics of the core
// model; the audit and metrics paths are concurrency-safe on their own, but
// callers racing Credit/Debit on one engine need external mutual exclusion.
type Engine struct {
	config  Config
	purseID string
	purse   *Purse
	gate    CodeGate
	code    *SecretCode // nil when the gate is external
	metrics *Metrics
	audit   *auditDispatcher
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// PurseID returns the identifier stamped on this engine's audit events.
func (e *Engine) PurseID() string {
	if e == nil {
		return ""
	}
	return e.purseID
}

// Balance returns the purse balance.
func (e *Engine) Balance() float64 {
	if e == nil || e.purse == nil {
		return 0
	}
	return e.purse.Balance()
}

// OperationsRemaining returns how many successful operations the purse
// still accepts.
func (e *Engine) OperationsRemaining() int {
	if e == nil || e.purse == nil {
		return 0
	}
	return e.purse.OperationsRemaining()
}

// CodeBlocked reports whether the gate is locked out.
func (e *Engine) CodeBlocked() bool {
	if e == nil || e.gate == nil {
		return false
	}
	return e.gate.IsBlocked()
}

// Credit adds amount to the purse, recording the outcome in metrics and the
// audit stream.
func (e *Engine) Credit(ctx context.Context, amount float64) error {
	if e == nil || e.purse == nil {
		return ErrEngineNotReady
	}

	err := e.purse.Credit(amount)
	e.metricOutcome(MetricCreditSuccess, err)
	e.emitOperation(ctx, AuditEventCredit, amount, err)
	return err
}

// Debit removes amount from the purse after code verification, recording
// the outcome in metrics and the audit stream. A failed verification that
// locks the gate additionally emits a lockout event.
func (e *Engine) Debit(ctx context.Context, amount float64, code string) error {
	if e == nil || e.purse == nil {
		return ErrEngineNotReady
	}

	blockedBefore := e.gate.IsBlocked()
	start := time.Now()

	err := e.purse.Debit(amount, code)

	e.metrics.Observe(MetricDebitLatency, time.Since(start))
	e.metricOutcome(MetricDebitSuccess, err)
	e.emitOperation(ctx, AuditEventDebit, amount, err)

	if !blockedBefore && e.gate.IsBlocked() {
		e.metricInc(MetricCodeLockout)
		e.emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: AuditEventLockout,
			PurseID:   e.purseID,
			Balance:   e.purse.Balance(),
			Success:   false,
		})
	}

	return err
}

// RevealCode returns the secret code in clear on the first call and the
// masked sentinel afterwards. It fails with [ErrCodeNotOwned] when the
// engine was built around an external gate.
func (e *Engine) RevealCode(ctx context.Context) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if e.code == nil {
		return "", ErrCodeNotOwned
	}

	revealed := e.code.Reveal()
	if revealed != maskedCodeSentinel {
		e.metricInc(MetricCodeReveal)
	}
	e.emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: AuditEventReveal,
		PurseID:   e.purseID,
		Balance:   e.purse.Balance(),
		Success:   revealed != maskedCodeSentinel,
	})

	return revealed, nil
}

// MetricsSnapshot returns a copy of all counters and histograms.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under pressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// metricOutcome maps an operation result onto the success counter or the
// rejection counter matching its error.
func (e *Engine) metricOutcome(success MetricID, err error) {
	switch {
	case err == nil:
		e.metricInc(success)
	case errors.Is(err, ErrNegativeAmount):
		e.metricInc(MetricNegativeAmountRejected)
	case errors.Is(err, ErrCapExceeded):
		e.metricInc(MetricCapExceededRejected)
	case errors.Is(err, ErrNegativeBalanceForbidden):
		e.metricInc(MetricNegativeBalanceRejected)
	case errors.Is(err, ErrOperationBudgetExhausted):
		e.metricInc(MetricBudgetExhaustedRejected)
	case errors.Is(err, ErrWrongCode):
		e.metricInc(MetricWrongCodeRejected)
	case errors.Is(err, ErrCodeBlocked):
		e.metricInc(MetricCodeBlockedRejected)
	}
}

func (e *Engine) emitOperation(ctx context.Context, eventType string, amount float64, err error) {
	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		PurseID:   e.purseID,
		Amount:    amount,
		Balance:   e.purse.Balance(),
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	e.emit(ctx, event)
}

func (e *Engine) emit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	e.audit.Emit(ctx, event)
}
