// Package ratelimit implementa el token bucket de las rutas públicas de auth:
// distribuido sobre Redis o, sin Redis, uno por IP en memoria.
package ratelimit

import (
	"context"
	"time"
)

// Result resultado de consumir un token.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter consume un token del bucket identificado por key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Config capacidad del bucket y tokens repuestos por minuto.
type Config struct {
	Capacity        int
	RefillPerMinute int
	Prefix          string
}

func (c Config) refillInterval() time.Duration {
	if c.RefillPerMinute <= 0 {
		return time.Minute
	}
	return time.Minute / time.Duration(c.RefillPerMinute)
}
