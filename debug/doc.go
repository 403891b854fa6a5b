// Package debug exposes a running scene over a local socket.
//
// A [Server] listens on a Unix domain socket and answers newline-delimited
// JSON requests of the form
//
//	{"method": "scene.stats", "params": null, "id": 1}
//
// with
//
//	{"result": {...}, "id": 1}
//	{"error": {"code": -32601, "message": "..."}, "id": 1}
//
// The host updates the server with a [Snapshot] after each frame and calls
// [Server.ApplyOverlays] before rendering so quads injected by a client
// appear on top of the scene. [Client] is the matching client.
//
// Methods:
//
//	scene.stats       quad count, viewport size, scale factor
//	scene.quads       every quad in the last snapshot
//	debug.draw_quad   add an overlay quad; returns its id
//	debug.remove      remove one overlay by id
//	debug.clear       remove all overlays
//	debug.list        list overlays
//	screenshot        render the snapshot and overlays to an image file
//	                  (also accepted as debug.screenshot)
package debug
