package goPurse

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStreamSink exports audit events to a Redis stream via XADD. It is an
// export channel only: no purse or gate state ever lives in Redis.
type RedisStreamSink struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

// NewRedisStreamSink creates a sink appending to the given stream. When
// maxLen > 0 the stream is trimmed approximately to that length on every
// append.
func NewRedisStreamSink(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamSink {
	if stream == "" {
		stream = "gopurse:audit"
	}
	return &RedisStreamSink{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Emit implements AuditSink. Redis failures are dropped; the audit pipeline
// never feeds back into the operation path.
func (s *RedisStreamSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.client == nil {
		return
	}

	values := map[string]interface{}{
		"timestamp":  event.Timestamp.UnixMilli(),
		"event_type": event.EventType,
		"purse_id":   event.PurseID,
		"amount":     strconv.FormatFloat(event.Amount, 'f', -1, 64),
		"balance":    strconv.FormatFloat(event.Balance, 'f', -1, 64),
		"success":    strconv.FormatBool(event.Success),
	}
	if event.Error != "" {
		values["error"] = event.Error
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: values,
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	_ = s.client.XAdd(ctx, args).Err()
}

// Stream returns the stream key this sink appends to.
func (s *RedisStreamSink) Stream() string {
	return s.stream
}
