package runner

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/wippyai/component-manager/namespace"
	"github.com/wippyai/component-manager/resolver"
)

// emptyModule is the smallest valid core WASM binary: magic + version.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestWasm_Start(t *testing.T) {
	ctx := context.Background()
	w := NewWasm(ctx)
	defer w.Close(ctx)

	req := StartRequest{
		ResolvedURL: "pkg://store/app",
		Program:     map[string]string{"binary": "bin/app.wasm"},
		Package: resolver.Package{FS: fstest.MapFS{
			"bin/app.wasm": &fstest.MapFile{Data: emptyModule},
		}},
		Namespace: &namespace.Namespace{},
	}

	if err := w.Start(ctx, req); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if w.Running() != 1 {
		t.Errorf("Running() = %d, want 1", w.Running())
	}

	// A second instance of the same component gets a distinct module name.
	if err := w.Start(ctx, req); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if w.Running() != 2 {
		t.Errorf("Running() = %d, want 2", w.Running())
	}
}

func TestWasm_StartErrors(t *testing.T) {
	ctx := context.Background()
	w := NewWasm(ctx)
	defer w.Close(ctx)

	pkg := resolver.Package{FS: fstest.MapFS{
		"bin/app.wasm": &fstest.MapFile{Data: emptyModule},
		"bin/bad.wasm": &fstest.MapFile{Data: []byte("not wasm")},
	}}

	tests := []struct {
		name string
		req  StartRequest
	}{
		{"no binary property", StartRequest{ResolvedURL: "pkg://x", Program: map[string]string{}, Package: pkg}},
		{"no package content", StartRequest{ResolvedURL: "pkg://x", Program: map[string]string{"binary": "bin/app.wasm"}}},
		{"missing binary", StartRequest{ResolvedURL: "pkg://x", Program: map[string]string{"binary": "bin/gone.wasm"}, Package: pkg}},
		{"invalid binary", StartRequest{ResolvedURL: "pkg://x", Program: map[string]string{"binary": "bin/bad.wasm"}, Package: pkg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := w.Start(ctx, tt.req); err == nil {
				t.Error("Start succeeded, want error")
			}
		})
	}
	if w.Running() != 0 {
		t.Errorf("failed starts left %d residents", w.Running())
	}
}
