// Package server exposes the course catalog over HTTP and runs live search
// sessions over WebSocket.
//
// # HTTP API
//
//	GET /healthz
//	GET /api/taxonomy                 regions and the category tree
//	GET /api/courses?<filters>&page=N search results for a filter query
//	GET /api/courses/highlights       popular, latest and recommended courses
//	GET /api/courses/{id}             a single course
//
// # Live search
//
// GET /live/search upgrades to a WebSocket. Each connection owns a
// filterstate.Synchronizer initialised from the connection's query string.
// The client sends JSON operations:
//
//	{"op":"update","patch":{"regions":["TPE"],"maxPoints":50}}
//	{"op":"page","page":2}
//	{"op":"reset"}
//	{"op":"apply"}
//
// and receives:
//
//	{"type":"session","session":"<uuid>"}            once, on connect
//	{"type":"results","results":{...}}               fresh search results
//	{"type":"url","mode":"replace","params":{...}}   write params to the address bar
//	{"type":"toast","event":"coursebook:toast","toast":{...}}
//	{"type":"error","error":{"code":"E400",...}}     a rejected operation
//
// URL writes and searches are debounced on the server, so a burst of
// updates produces one "url" message and one "results" message.
package server
