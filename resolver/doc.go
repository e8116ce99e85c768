// Package resolver defines how component URLs become declarations.
//
// # Main Types
//
//   - Resolver: produces a declaration + package content for a URL
//   - Registry: routes URLs to resolvers by scheme
//   - Local: a store-backed resolver over an fs.FS
//
// # Resolution
//
// The orchestration core resolves lazily: a component's declaration is
// fetched the first time its tree node is touched, and the result is
// memoized on the node. Resolvers therefore see each URL at most once per
// node under normal operation, but must still be safe for concurrent use.
package resolver
