package goPurse

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/goPurse/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineTestConfig() Config {
	cfg := defaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64
	cfg.Audit.DropIfFull = false
	return cfg
}

func newScriptedEngine(t *testing.T, cfg Config, sink AuditSink) *Engine {
	t.Helper()

	builder := New().
		WithConfig(cfg).
		WithRandomSource(random.NewScripted(5, 4, 3, 2))
	if sink != nil {
		builder = builder.WithAuditSink(sink)
	}

	engine, err := builder.Build()
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return engine
}

func drainEvents(t *testing.T, sink *ChannelSink, n int) []AuditEvent {
	t.Helper()

	events := make([]AuditEvent, 0, n)
	for i := 0; i < n; i++ {
		select {
		case event := <-sink.Events():
			events = append(events, event)
		case <-time.After(time.Second):
			t.Fatalf("expected %d audit events, got %d", n, len(events))
		}
	}
	return events
}

func TestEngineCreditDebitRoundTrip(t *testing.T) {
	engine := newScriptedEngine(t, engineTestConfig(), nil)
	ctx := context.Background()

	require.NoError(t, engine.Credit(ctx, 10))
	assert.Equal(t, 10.0, engine.Balance())

	require.NoError(t, engine.Debit(ctx, 10, "5432"))
	assert.Equal(t, 0.0, engine.Balance())

	s := engine.MetricsSnapshot()
	assert.Equal(t, uint64(1), s.Counters[MetricCreditSuccess])
	assert.Equal(t, uint64(1), s.Counters[MetricDebitSuccess])
}

func TestEngineRevealCodeOnce(t *testing.T) {
	engine := newScriptedEngine(t, engineTestConfig(), nil)
	ctx := context.Background()

	code, err := engine.RevealCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5432", code)

	masked, err := engine.RevealCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "xxxx", masked)

	assert.Equal(t, uint64(1), engine.MetricsSnapshot().Counters[MetricCodeReveal])
}

func TestEngineRevealUnavailableWithExternalGate(t *testing.T) {
	engine, err := New().
		WithConfig(engineTestConfig()).
		WithGate(NewSecretCode("1111")).
		Build()
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.RevealCode(context.Background())
	assert.ErrorIs(t, err, ErrCodeNotOwned)
}

func TestEngineRejectionCounters(t *testing.T) {
	cfg := engineTestConfig()
	cfg.Purse.Cap = 50
	cfg.Purse.OperationBudget = 2
	engine := newScriptedEngine(t, cfg, nil)
	ctx := context.Background()

	assert.ErrorIs(t, engine.Credit(ctx, -1), ErrNegativeAmount)
	assert.ErrorIs(t, engine.Credit(ctx, 51), ErrCapExceeded)
	assert.ErrorIs(t, engine.Debit(ctx, 10, "5432"), ErrNegativeBalanceForbidden)
	assert.ErrorIs(t, engine.Debit(ctx, 0, "0000"), ErrWrongCode)

	require.NoError(t, engine.Credit(ctx, 40))
	require.NoError(t, engine.Debit(ctx, 20, "5432"))
	assert.ErrorIs(t, engine.Credit(ctx, 20), ErrOperationBudgetExhausted)

	s := engine.MetricsSnapshot()
	assert.Equal(t, uint64(1), s.Counters[MetricNegativeAmountRejected])
	assert.Equal(t, uint64(1), s.Counters[MetricCapExceededRejected])
	assert.Equal(t, uint64(1), s.Counters[MetricNegativeBalanceRejected])
	assert.Equal(t, uint64(1), s.Counters[MetricWrongCodeRejected])
	assert.Equal(t, uint64(1), s.Counters[MetricBudgetExhaustedRejected])
	assert.Equal(t, uint64(1), s.Counters[MetricCreditSuccess])
	assert.Equal(t, uint64(1), s.Counters[MetricDebitSuccess])
}

func TestEngineLockoutEmitsEventAndCounter(t *testing.T) {
	sink := NewChannelSink(64)
	engine := newScriptedEngine(t, engineTestConfig(), sink)
	ctx := context.Background()

	require.NoError(t, engine.Credit(ctx, 50))

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, engine.Debit(ctx, 10, "0000"), ErrWrongCode)
	}
	assert.True(t, engine.CodeBlocked())

	// credit + 3 debit rejections + 1 lockout event.
	events := drainEvents(t, sink, 5)

	var types []string
	for _, event := range events {
		types = append(types, event.EventType)
		assert.Equal(t, engine.PurseID(), event.PurseID)
	}
	assert.Equal(t, []string{
		AuditEventCredit,
		AuditEventDebit,
		AuditEventDebit,
		AuditEventDebit,
		AuditEventLockout,
	}, types)

	s := engine.MetricsSnapshot()
	assert.Equal(t, uint64(1), s.Counters[MetricCodeLockout])
	assert.Equal(t, uint64(3), s.Counters[MetricWrongCodeRejected])

	// Once locked, both operations are refused up front.
	assert.ErrorIs(t, engine.Debit(ctx, 10, "5432"), ErrCodeBlocked)
	assert.ErrorIs(t, engine.Credit(ctx, 10), ErrCodeBlocked)
	assert.Equal(t, 50.0, engine.Balance())
}

func TestEngineAuditEventFields(t *testing.T) {
	sink := NewChannelSink(8)
	engine := newScriptedEngine(t, engineTestConfig(), sink)
	ctx := context.Background()

	require.NoError(t, engine.Credit(ctx, 25))
	assert.ErrorIs(t, engine.Credit(ctx, 100), ErrCapExceeded)

	events := drainEvents(t, sink, 2)

	success := events[0]
	assert.True(t, success.Success)
	assert.Equal(t, 25.0, success.Amount)
	assert.Equal(t, 25.0, success.Balance)
	assert.Empty(t, success.Error)
	assert.False(t, success.Timestamp.IsZero())

	rejected := events[1]
	assert.False(t, rejected.Success)
	assert.Equal(t, 100.0, rejected.Amount)
	assert.Equal(t, 25.0, rejected.Balance)
	assert.Equal(t, ErrCapExceeded.Error(), rejected.Error)
}

func TestEngineDebitLatencyHistogramRecorded(t *testing.T) {
	cfg := engineTestConfig()
	cfg.Metrics.EnableLatencyHistograms = true
	engine := newScriptedEngine(t, cfg, nil)
	ctx := context.Background()

	require.NoError(t, engine.Credit(ctx, 50))
	require.NoError(t, engine.Debit(ctx, 10, "5432"))

	buckets := engine.MetricsSnapshot().Histograms[MetricDebitLatency]
	require.Len(t, buckets, histBucketCount)

	var total uint64
	for _, b := range buckets {
		total += b
	}
	assert.Equal(t, uint64(1), total)
}

func TestEngineNilReceiverSafe(t *testing.T) {
	var engine *Engine
	ctx := context.Background()

	assert.ErrorIs(t, engine.Credit(ctx, 10), ErrEngineNotReady)
	assert.ErrorIs(t, engine.Debit(ctx, 10, "0000"), ErrEngineNotReady)
	_, err := engine.RevealCode(ctx)
	assert.ErrorIs(t, err, ErrEngineNotReady)
	assert.Equal(t, 0.0, engine.Balance())
	assert.False(t, engine.CodeBlocked())
	assert.Equal(t, "", engine.PurseID())
	engine.Close()
}
