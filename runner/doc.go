// Package runner defines how resolved components are executed.
//
// # Main Types
//
//   - Runner: executes a prepared StartRequest
//   - Wasm: runs program binaries as WebAssembly modules on wazero
//   - Log: records and logs starts (dry runs, tests)
//
// A runner is injected at root-realm construction as the default runner for
// the whole tree. Start is asynchronous with respect to the program: it
// returns once dispatch succeeds, and the orchestration core never waits for
// a program to exit. Lifecycle teardown is the runner's own concern.
package runner
