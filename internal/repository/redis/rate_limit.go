package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/parkit/parkit-auth/internal/core/port"
)

var errInvalidWindow = errors.New("rate limit window must be positive")

// acquireScript trims, counts and conditionally records in one server-side step
// so concurrent requests for a key cannot all pass the count check.
// Scores are unix milliseconds.
var acquireScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[5])

redis.call('ZREMRANGEBYSCORE', key, '-inf', '(' .. (now - window))
local count = redis.call('ZCARD', key)

local oldest = -1
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if #first > 0 then
	oldest = tonumber(first[2])
end

local allowed = 0
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	if ttl > 0 then
		redis.call('PEXPIRE', key, ttl)
	end
	allowed = 1
end

return {count, oldest, allowed}
`)

// ThrottleStoreConfig configures key naming and retention of throttle counters.
type ThrottleStoreConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// ThrottleStore keeps request timestamps per client in Redis sorted sets.
type ThrottleStore struct {
	client *redis.Client
	cfg    ThrottleStoreConfig
}

func NewThrottleStore(client *redis.Client, cfg ThrottleStoreConfig) *ThrottleStore {
	return &ThrottleStore{client: client, cfg: cfg}
}

func (s *ThrottleStore) Acquire(ctx context.Context, key string, limit int, window time.Duration, at time.Time) (port.ThrottleWindow, error) {
	if window <= 0 {
		return port.ThrottleWindow{}, errInvalidWindow
	}

	// members must be unique, two hits can share a millisecond
	member := strconv.FormatInt(at.UnixMilli(), 10) + ":" + uuid.NewString()
	reply, err := acquireScript.Run(ctx, s.client, []string{s.key(key)},
		at.UnixMilli(),
		window.Milliseconds(),
		limit,
		member,
		s.cfg.TTL.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return port.ThrottleWindow{}, fmt.Errorf("acquire throttle slot: %w", err)
	}
	if len(reply) != 3 {
		return port.ThrottleWindow{}, fmt.Errorf("acquire throttle slot: unexpected reply %v", reply)
	}

	state := port.ThrottleWindow{
		Count:   int(reply[0]),
		Allowed: reply[2] == 1,
	}
	if reply[1] >= 0 {
		state.Oldest = time.UnixMilli(reply[1]).UTC()
	}
	return state, nil
}

func (s *ThrottleStore) key(key string) string {
	if s.cfg.KeyPrefix == "" {
		return key
	}
	return s.cfg.KeyPrefix + ":" + key
}

var _ port.RateLimitStore = (*ThrottleStore)(nil)
