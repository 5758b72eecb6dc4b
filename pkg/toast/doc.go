// Package toast provides feedback notifications for coursebook views.
//
// Components never talk to a global toast handle. Each one receives a
// Notifier when it is constructed, so a live session can route toasts to
// its own client and tests can record them.
//
// The Emitter adapts any generic event sink, such as a session's event
// channel, by dispatching a "coursebook:toast" event whose payload is:
//
//	{ "level": "success", "title": "Filters applied", "message": "...", "durationMs": 3000 }
//
// Usage:
//
//	toast.Success(n, "Filters applied", "Found 12 matching courses")
package toast
