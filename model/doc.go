// Package model implements the component instance tree and its binding
// algorithm.
//
// # Main Types
//
//   - Model: owns the root realm; entry point for binding operations
//   - Realm: one tree node bundling instance state with its resolver/runner
//   - Execution: the live-instance record created on successful start
//
// # The Tree
//
// The tree is built lazily, one level at a time: a node's children exist as
// Realm objects only after that node's own declaration has been resolved.
// The shape is append-only; no node is ever added, removed, or reparented
// after its parent's declaration is populated, and the core never destroys a
// realm.
//
// # Binding
//
// Binding a realm resolves its declaration (at most once) and starts its
// program (at most once), then transitively binds descendants declared with
// eager startup. Binding an already-running instance is an idempotent no-op.
// All failures are surfaced as structured errors and leave the node's
// persistent state untouched, so a later caller can retry the failed step.
//
// # Thread Safety
//
// Every operation is safe for concurrent use. Each realm's state is guarded
// by its own lock and no operation holds more than one realm's lock at a
// time. Concurrent binds of the same realm serialize on that realm's slow
// work, which is what provides at-most-once resolve and start semantics;
// binds of different realms proceed independently.
package model
