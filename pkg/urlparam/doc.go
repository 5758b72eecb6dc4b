// Package urlparam carries URL query updates from server-side state to the
// client.
//
// A Navigator turns a flat parameter map and a history mode into a
// URLUpdate and hands it to a send function (a live session writes it to
// its WebSocket). A Debouncer delays such updates until input settles:
//
//	nav := urlparam.NewNavigator(session.SendURL)
//	d := urlparam.NewDebouncer(500*time.Millisecond, func() {
//	    nav.Navigate(filters.Encode(current()), urlparam.ModeReplace)
//	})
//	d.Trigger() // called on every keystroke; fires once, 500ms after the last
package urlparam
