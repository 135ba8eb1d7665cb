// Package domain defines the core entities for boardsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: A raw webhook delivery (kind plus JSON payload)
//   - ItemContext: The normalised facts of a label event
//   - ProjectMapping: One row of the label to project table
//   - ProjectIdentity: A project's number and opaque node ID
//   - RunResult / RunFailure: The outcome of one invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
