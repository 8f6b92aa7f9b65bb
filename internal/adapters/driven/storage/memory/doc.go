// Package memory provides in-memory implementations of the driven storage
// ports. The session's loaded document lives here; nothing is persisted.
package memory
