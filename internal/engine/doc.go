// Package engine runs the search index in its own goroutine and talks to it
// only by message passing.
//
// Callers send Requests on a bounded channel and receive Replies on another.
// The engine handles one message at a time in arrival order, so replies come
// back in request order and the index is never touched concurrently. Data
// crosses the boundary by copy: LoadData payloads are structured-cloned
// before they are sent.
//
// There is no protocol-level cancellation. A search always runs to
// completion or to the result cap. Callers wanting "latest wins" semantics
// compare the echoed Seq and drop replies they no longer care about.
package engine
