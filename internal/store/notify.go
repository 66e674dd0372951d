package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is one transient message queued for the client.
type Notification struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Kind     string        `json:"kind"` // success, error, info
	Duration time.Duration `json:"-"`
}

// NotificationQueue is an ordered queue of transient messages. Show schedules
// automatic removal after the given duration; Remove is idempotent. Rendering
// order is insertion order, with no priority or coalescing of duplicates.
type NotificationQueue struct {
	mu     sync.Mutex
	order  []string
	items  map[string]Notification
	timers map[string]*time.Timer
}

func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{
		items:  make(map[string]Notification),
		timers: make(map[string]*time.Timer),
	}
}

// Show appends a message and schedules its removal after duration. A
// non-positive duration keeps the message until removed explicitly.
func (q *NotificationQueue) Show(message, kind string, duration time.Duration) string {
	id := uuid.NewString()

	q.mu.Lock()
	q.items[id] = Notification{ID: id, Message: message, Kind: kind, Duration: duration}
	q.order = append(q.order, id)
	if duration > 0 {
		q.timers[id] = time.AfterFunc(duration, func() {
			q.Remove(id)
		})
	}
	q.mu.Unlock()

	return id
}

// Remove drops a message by id. Unknown ids are a no-op.
func (q *NotificationQueue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.items[id]; !ok {
		return
	}
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	delete(q.items, id)
	for i, queued := range q.order {
		if queued == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Clear empties the queue and cancels all pending removal timers.
func (q *NotificationQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.timers {
		t.Stop()
	}
	q.timers = make(map[string]*time.Timer)
	q.items = make(map[string]Notification)
	q.order = nil
}

// List returns queued messages in insertion order.
func (q *NotificationQueue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.items[id])
	}
	return out
}
