package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient crea el cliente y hace ping con timeout corto.
// Devuelve error si el servidor no responde; el llamante decide el fallback.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// tokenBucketScript estado del bucket en un hash {tokens, last_refill_ms}.
// Reposición discreta: refill tokens por cada intervalo completo transcurrido.
// Devuelve {allowed, tokens restantes, ms hasta el próximo token}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + intervals)
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter token bucket compartido entre instancias.
type RedisLimiter struct {
	rdb *redis.Client
	cfg Config
	now func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter construye el limitador distribuido.
func NewRedisLimiter(rdb *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg, now: time.Now}
}

// Allow ejecuta el script atómicamente sobre prefix:key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	interval := l.cfg.refillInterval()
	// el bucket lleno tarda capacity*interval en reponerse; después la clave sobra
	ttl := int64((time.Duration(l.cfg.Capacity)*interval)/time.Second) + 1

	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{l.cfg.Prefix + ":" + key},
		l.now().UnixMilli(), l.cfg.Capacity, interval.Milliseconds(), ttl,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: script: %w", err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("ratelimit: respuesta inesperada: %v", vals)
	}
	return Result{
		Allowed:    vals[0] == 1,
		Limit:      l.cfg.Capacity,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// FormatSeconds segundos enteros hacia arriba, para Retry-After.
func FormatSeconds(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return strconv.FormatInt(secs, 10)
}
