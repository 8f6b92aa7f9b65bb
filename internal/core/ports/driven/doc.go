// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TreeDecoder: Turns document bytes into a RawNode tree
//   - UnitNormaliser: Turns raw unit nodes into canonical translation units
//   - RecordStore: Holds the loaded document for rendering and paging
//   - SearchBackend: The index/query engine behind the execution boundary
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, decoder, or normaliser package
package driven
