package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/geofence-console/pkg/ctxutil"
)

// RateLimiter throttles geofence mutations per caller: the authenticated user
// when Auth ran before it, the client IP otherwise. Callers idle for longer
// than idleTTL are forgotten.
type RateLimiter struct {
	idleTTL time.Duration

	mu        sync.Mutex
	callers   map[string]*callerLimit
	lastSweep time.Time
}

type callerLimit struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewRateLimiter creates a RateLimiter.
func NewRateLimiter(idleTTL time.Duration) *RateLimiter {
	return &RateLimiter{
		idleTTL:   idleTTL,
		callers:   make(map[string]*callerLimit),
		lastSweep: time.Now(),
	}
}

// Limit allows a burst of perMinute requests per caller, refilled evenly over
// a minute. Rejected requests get 429 with Retry-After in whole seconds.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	every := rate.Every(time.Minute / time.Duration(perMinute))
	prefix := strconv.Itoa(perMinute) + "|"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := rl.limiter(prefix+callerKey(r), every, perMinute).Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string, every rate.Limit, burst int) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	c, ok := rl.callers[key]
	if !ok {
		c = &callerLimit{lim: rate.NewLimiter(every, burst)}
		rl.callers[key] = c
	}
	c.seen = now
	return c.lim
}

// sweep drops idle callers. rl.mu must be held.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, c := range rl.callers {
		if now.Sub(c.seen) >= rl.idleTTL {
			delete(rl.callers, key)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.callers)
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
