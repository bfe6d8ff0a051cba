package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter un rate.Limiter por clave, en memoria del proceso.
// Se usa cuando no hay Redis; cada instancia lleva su propia cuenta.
// Las claves sin uso durante idleTTL se descartan: su bucket ya estaría lleno.
type LocalLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	cfg       Config
	now       func() time.Time
	lastSweep time.Time
}

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

var _ Limiter = (*LocalLimiter)(nil)

// NewLocalLimiter construye el limitador en memoria.
func NewLocalLimiter(cfg Config) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*localEntry),
		cfg:      cfg,
		now:      time.Now,
	}
}

// idleTTL tiempo en rellenar el bucket completo.
func (l *LocalLimiter) idleTTL() time.Duration {
	ttl := time.Duration(l.cfg.Capacity) * l.cfg.refillInterval()
	if ttl < l.cfg.refillInterval() {
		return l.cfg.refillInterval()
	}
	return ttl
}

func (l *LocalLimiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	ttl := l.idleTTL()
	if now.Sub(l.lastSweep) >= ttl {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) >= ttl {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}
	if e, ok := l.limiters[key]; ok {
		e.lastSeen = now
		return e.lim
	}
	lim := rate.NewLimiter(rate.Every(l.cfg.refillInterval()), l.cfg.Capacity)
	l.limiters[key] = &localEntry{lim: lim, lastSeen: now}
	return lim
}

func (l *LocalLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Allow consume un token si hay; si no, informa cuánto falta para el siguiente.
func (l *LocalLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()
	lim := l.get(key, now)
	res := Result{Limit: l.cfg.Capacity}

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return res, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = delay
		return res, nil
	}
	res.Allowed = true
	res.Remaining = int(lim.TokensAt(now))
	return res, nil
}
