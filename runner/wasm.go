package runner

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Wasm executes component programs as WebAssembly modules on a shared wazero
// runtime. The program's "binary" property names the module inside the
// component's package.
type Wasm struct {
	runtime wazero.Runtime
	counter atomic.Uint64

	mu      sync.Mutex
	modules []api.Module
}

// NewWasm creates a wazero-backed runner.
func NewWasm(ctx context.Context) *Wasm {
	return &Wasm{
		runtime: wazero.NewRuntime(ctx),
	}
}

// Start implements Runner. The module's start function (if any) runs during
// instantiation; the instance then stays resident until Close.
func (w *Wasm) Start(ctx context.Context, req StartRequest) error {
	binary := req.Program["binary"]
	if binary == "" {
		return fmt.Errorf("program for %s has no binary property", req.ResolvedURL)
	}
	if req.Package.FS == nil {
		return fmt.Errorf("component %s has no package content", req.ResolvedURL)
	}

	wasmBytes, err := fs.ReadFile(req.Package.FS, binary)
	if err != nil {
		return fmt.Errorf("read binary %q: %w", binary, err)
	}

	compiled, err := w.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return fmt.Errorf("compile %q: %w", binary, err)
	}

	// Module names must be unique within a wazero runtime.
	name := fmt.Sprintf("%s#%d", req.ResolvedURL, w.counter.Add(1))
	mod, err := w.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return fmt.Errorf("instantiate %q: %w", binary, err)
	}

	w.mu.Lock()
	w.modules = append(w.modules, mod)
	w.mu.Unlock()
	return nil
}

// Running returns the number of resident module instances.
func (w *Wasm) Running() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.modules)
}

// Close tears down all instances and the underlying runtime.
func (w *Wasm) Close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}
