// Package notify holds transient toast-style notifications. A notification
// dismisses itself after a fixed delay; this is the only timer the client
// runs, and it is cancelled when the notifier is closed.
package notify

import (
	"sync"
	"time"
)

type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

type (
	Notification struct {
		Level   Level
		Message string
	}

	Notifier struct {
		ttl time.Duration

		mu     sync.Mutex
		active []Notification
		timers []*time.Timer
		closed bool
	}
)

const defaultTTL = 5 * time.Second

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Push shows a notification and schedules its auto-dismiss.
func (n *Notifier) Push(level Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	note := Notification{Level: level, Message: msg}
	n.active = append(n.active, note)
	timer := time.AfterFunc(n.ttl, func() { n.dismiss(note) })
	n.timers = append(n.timers, timer)
}

// Active returns the notifications currently on display.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

// Close cancels all pending dismiss timers; called on unmount/shutdown.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
	n.active = nil
}

func (n *Notifier) dismiss(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, a := range n.active {
		if a == note {
			n.active = append(n.active[:i], n.active[i+1:]...)
			break
		}
	}
}
