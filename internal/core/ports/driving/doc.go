// Package driving defines the operations the CLI, TUI and MCP adapters call
// on the core: loading a TMX document and querying its units.
//
// The implementations live in internal/core/services.
package driving
