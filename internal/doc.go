// Package internal documents the campus event catalog internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain: event records, identifiers, and catalog operations
// - storage: the flat-file JSON event store
// - auth, config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
