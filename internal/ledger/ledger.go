package ledger

import (
	"strings"
	"sync"
	"time"
)

type key struct {
	username string
	topic    string
}

// Ledger tracks the last notified time per (user, topic) pair so repeat
// alerts inside the cooldown window can be suppressed. Entries are never
// evicted; staleness is evaluated on read and stale records are simply
// overwritten by the next alert.
type Ledger struct {
	mu      sync.RWMutex
	window  time.Duration
	entries map[key]time.Time
}

func New(window time.Duration) *Ledger {
	return &Ledger{
		window:  window,
		entries: make(map[key]time.Time),
	}
}

// IsEligible reports whether an alert for the pair may be sent at now. A pair
// with no record, or whose last alert is at least one full window old, is
// eligible.
func (l *Ledger) IsEligible(username, topic string, now time.Time) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	last, ok := l.entries[makeKey(username, topic)]
	if !ok {
		return true
	}
	return now.Sub(last) >= l.window
}

// Record stores now as the last notified time for the pair, overwriting any
// previous record.
func (l *Ledger) Record(username, topic string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[makeKey(username, topic)] = now
}

func (l *Ledger) Stats() map[string]interface{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return map[string]interface{}{
		"entries": len(l.entries),
		"window":  l.window.String(),
	}
}

// Topics are lowercase-normalized; usernames are exact keys.
func makeKey(username, topic string) key {
	return key{username: username, topic: strings.ToLower(topic)}
}
