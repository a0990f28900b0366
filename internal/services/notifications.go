package services

import "sync"

type Severity string

const SeverityDestructive Severity = "destructive"

const KindIncompatibleFieldTypes = "incompatible_field_types"

// Notification is a user-visible validation message destined for the
// presentation layer (rendered as a toast by the client).
type Notification struct {
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier receives user-visible validation failures.
type Notifier interface {
	Notify(n Notification)
}

// NotificationBuffer collects notifications until the presentation
// layer drains them. Draining empties the buffer.
type NotificationBuffer struct {
	mu      sync.Mutex
	pending []Notification
}

func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{}
}

func (b *NotificationBuffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
}

func (b *NotificationBuffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.pending
	b.pending = nil
	return drained
}
