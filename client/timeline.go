// Package client holds the client-side pieces of the relay: the
// websocket dialer and the local timeline projection. History lives
// here, never on the server.
package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"chat-relay/domain"
)

// Entry is one received (or locally echoed) message with the moment it
// landed, used to render "N units ago" metadata.
type Entry struct {
	Message    domain.ChatMessage
	ReceivedAt time.Time
}

// Timeline is an ordered local projection of observed messages.
// It does not emit events or interact with the UI directly.
type Timeline struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (t *Timeline) Append(msg domain.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{Message: msg, ReceivedAt: time.Now()})
}

// Snapshot returns a copy safe to render while new messages arrive.
func (t *Timeline) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return lo.Map(t.entries, func(e Entry, _ int) Entry { return e })
}

func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Metadata renders "<name>, <N> <unit> ago" for an entry.
func (e Entry) Metadata(now time.Time) string {
	return fmt.Sprintf("%s, %s ago", e.Message.SenderName, Ago(now.Sub(e.ReceivedAt)))
}

// Ago collapses an elapsed duration into the largest unit that keeps
// the count at least 1: seconds, minutes, hours, days, then years.
func Ago(elapsed time.Duration) string {
	ladder := []struct {
		multi float64
		unit  string
	}{
		{60, "s"},
		{60, "min"},
		{24, "h"},
		{365, "day(s)"},
		{1000, "year(s)"},
	}

	value := elapsed.Seconds()
	if value < 0 {
		value = 0
	}
	unit := "s"
	for _, step := range ladder {
		next := value / step.multi
		if next < 1 {
			unit = step.unit
			break
		}
		value = next
	}

	return fmt.Sprintf("%d %s", int(value), unit)
}
