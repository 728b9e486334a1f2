package nakama

import (
	"time"

	"golang.org/x/time/rate"
)

// intentLimiter throttles client messages per user. Only the loop goroutine
// touches it.
type intentLimiter struct {
	limit   rate.Limit
	burst   int
	perUser map[string]*rate.Limiter
}

func newIntentLimiter(perSecond float64, burst int) *intentLimiter {
	return &intentLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		perUser: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether userID may send another message at now.
func (l *intentLimiter) Allow(userID string, now time.Time) bool {
	lim, ok := l.perUser[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.perUser[userID] = lim
	}
	return lim.AllowN(now, 1)
}

func (l *intentLimiter) Forget(userID string) {
	delete(l.perUser, userID)
}
