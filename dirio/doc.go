// Package dirio implements the asynchronous directory-open protocol used
// between component instances and the orchestration core.
//
// A directory connection is a pair of connected endpoints. The client end
// issues fire-and-forget open requests; the server end is handed to whoever
// serves the directory (typically a runner, for an instance's outgoing
// directory). Requests sent before a directory is attached are buffered and
// delivered on attach, matching channel semantics: the open protocol answers
// asynchronously to the caller who supplied the server endpoint, never to the
// party that issued the open.
//
// Endpoint pairs are tracked in a handle table so callers can observe and
// bound live connections.
package dirio
