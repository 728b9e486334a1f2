package app

import (
	"sort"
	"time"
)

// timer is a delayed notification on the room clock. Its action may only
// emit events or request disposal.
type timer struct {
	at   time.Duration
	fire func()
}

// after schedules fn to run once the room clock advanced by d.
func (r *Room) after(d time.Duration, fn func()) {
	r.timers = append(r.timers, timer{at: r.clock + d, fire: fn})
}

// advanceClock moves the room clock and fires every due timer in order.
func (r *Room) advanceClock(dt time.Duration) {
	r.clock += dt
	if len(r.timers) == 0 {
		return
	}
	sort.SliceStable(r.timers, func(i, j int) bool { return r.timers[i].at < r.timers[j].at })
	n := 0
	for n < len(r.timers) && r.timers[n].at <= r.clock {
		n++
	}
	due := r.timers[:n]
	r.timers = append([]timer(nil), r.timers[n:]...)
	for _, t := range due {
		t.fire()
	}
}

// PendingTimers is the number of scheduled notifications.
func (r *Room) PendingTimers() int { return len(r.timers) }
