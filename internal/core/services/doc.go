// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// DocumentService runs the load pipeline: decode, normalise, store, index.
// SearchService turns a user request into a backend query and pages the
// matching positions over the stored units.
package services
