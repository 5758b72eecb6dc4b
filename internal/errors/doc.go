// Package errors provides structured, actionable errors for coursebook.
//
// Each error carries a code from the registry (e.g. "E100"), a category,
// a short message and optional detail, suggestion and wrapped cause.
//
// # Error Categories
//
//   - config: coursebook.json loading and validation
//   - catalog: course catalog decoding and loading (file, S3)
//   - request: bad HTTP or live-session input
//   - protocol: live search session message errors
//
// # Usage
//
//	err := errors.New("E102").
//	    WithDetail("Port must be between 0 and 65535").
//	    WithSuggestion("Set server.port in coursebook.json")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E102: Invalid server port
//	//
//	//   Port must be between 0 and 65535
//	//
//	//   Hint: Set server.port in coursebook.json
package errors
