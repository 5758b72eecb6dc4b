package toast

import "time"

// EventName is the event name dispatched for toasts.
// Client-side code should listen for this event.
const EventName = "coursebook:toast"

// Kind represents the toast notification type.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Default display durations.
const (
	DefaultInfoDuration    = 2 * time.Second
	DefaultSuccessDuration = 3 * time.Second
)

// Toast is a single notification.
type Toast struct {
	Kind     Kind
	Title    string
	Detail   string
	Duration time.Duration
}

// Payload returns the client event payload.
func (t Toast) Payload() map[string]any {
	return map[string]any{
		"level":      string(t.Kind),
		"title":      t.Title,
		"message":    t.Detail,
		"durationMs": t.Duration.Milliseconds(),
	}
}

// Notifier delivers toasts. Delivery is fire-and-forget.
type Notifier interface {
	Notify(Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Toast)

// Notify calls f(t).
func (f NotifierFunc) Notify(t Toast) {
	f(t)
}

// Discard drops every toast.
var Discard Notifier = NotifierFunc(func(Toast) {})

// Emitter dispatches toasts as custom events through emit.
type Emitter struct {
	emit func(name string, data any)
}

// NewEmitter creates an Emitter over a generic event sink.
func NewEmitter(emit func(name string, data any)) *Emitter {
	return &Emitter{emit: emit}
}

// Notify dispatches t as an EventName event.
func (e *Emitter) Notify(t Toast) {
	if e == nil || e.emit == nil {
		return
	}
	e.emit(EventName, t.Payload())
}

// Info shows an info toast.
//
//	toast.Info(n, "Filters reset", "All filters have been cleared")
func Info(n Notifier, title, detail string) {
	n.Notify(Toast{Kind: KindInfo, Title: title, Detail: detail, Duration: DefaultInfoDuration})
}

// Success shows a success toast.
//
//	toast.Success(n, "Saved", "Your changes have been saved.")
func Success(n Notifier, title, detail string) {
	n.Notify(Toast{Kind: KindSuccess, Title: title, Detail: detail, Duration: DefaultSuccessDuration})
}
