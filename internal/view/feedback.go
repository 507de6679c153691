package view

import (
	"sync"
	"time"
)

// Severity classifies a feedback message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultFeedbackTTL is how long a message stays visible before it
// auto-dismisses.
const DefaultFeedbackTTL = 6 * time.Second

// Feedback is one transient message shown after a mutating action.
type Feedback struct {
	Message  string
	Severity Severity
}

// Notifier holds at most one live feedback message and dismisses it after
// the TTL elapses.
type Notifier struct {
	ttl   time.Duration
	nowFn func() time.Time

	mu      sync.Mutex
	current Feedback
	shownAt time.Time
	active  bool
}

// NewNotifier constructs a notifier. A non-positive ttl uses the default.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultFeedbackTTL
	}
	return &Notifier{ttl: ttl, nowFn: time.Now}
}

// Show replaces the current message and restarts the dismiss timer.
func (n *Notifier) Show(message string, severity Severity) {
	n.mu.Lock()
	n.current = Feedback{Message: message, Severity: severity}
	n.shownAt = n.nowFn()
	n.active = true
	n.mu.Unlock()
}

// Success is shorthand for a success message.
func (n *Notifier) Success(message string) { n.Show(message, SeveritySuccess) }

// Error is shorthand for a failure message.
func (n *Notifier) Error(message string) { n.Show(message, SeverityError) }

// Current returns the live message, or ok=false when none is showing or the
// TTL has elapsed.
func (n *Notifier) Current() (Feedback, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.active {
		return Feedback{}, false
	}
	if n.nowFn().Sub(n.shownAt) >= n.ttl {
		n.active = false
		return Feedback{}, false
	}
	return n.current, true
}

// Dismiss clears the message immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.active = false
	n.mu.Unlock()
}
