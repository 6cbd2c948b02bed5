package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a capped, producer-side list in Redis. Newest messages sit
// at the head; anything past MaxLen is trimmed on every push. It is the
// diagnostics sink when Kafka is not configured.
type RedisQueue struct {
	client    redis.Cmdable
	keyPrefix string
	maxLen    int64
	now       func() time.Time
}

type RedisQueueOption func(*RedisQueue)

// WithKeyPrefix sets custom key prefix.
func WithKeyPrefix(prefix string) RedisQueueOption {
	return func(r *RedisQueue) {
		r.keyPrefix = prefix
	}
}

// WithMaxLen caps the list. Zero keeps everything.
func WithMaxLen(n int64) RedisQueueOption {
	return func(r *RedisQueue) {
		r.maxLen = n
	}
}

func NewRedisQueue(client redis.Cmdable, opts ...RedisQueueOption) *RedisQueue {
	q := &RedisQueue{
		client:    client,
		keyPrefix: "energy:queue",
		maxLen:    1000,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Ping checks the connection.
func (r *RedisQueue) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// PublishMessage pushes payload under msgType. It satisfies logger.Publisher.
func (r *RedisQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	msg, err := newMessage(msgType, payload, r.now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := r.key(msgType)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	if r.maxLen > 0 {
		pipe.LTrim(ctx, key, 0, r.maxLen-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	return nil
}

// Recent returns up to n messages of msgType, newest first.
func (r *RedisQueue) Recent(ctx context.Context, msgType string, n int64) ([]Message, error) {
	if n <= 0 {
		return nil, nil
	}
	vals, err := r.client.LRange(ctx, r.key(msgType), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange: %w", err)
	}
	out := make([]Message, 0, len(vals))
	for _, v := range vals {
		var m Message
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *RedisQueue) key(msgType string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, msgType)
}
