package resolver

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/wippyai/component-manager/decl"
)

func testStore() fs.FS {
	return fstest.MapFS{
		"shell/manifest.toml": &fstest.MapFile{Data: []byte(`
[program]
binary = "bin/shell.wasm"

[[children]]
name = "logger"
url = "pkg://store/logger"
startup = "eager"
`)},
		"shell/bin/shell.wasm":  &fstest.MapFile{Data: []byte{0x00, 0x61, 0x73, 0x6d}},
		"logger/manifest.toml":  &fstest.MapFile{Data: []byte("[program]\nbinary = \"bin/logger.wasm\"\n")},
		"logger/bin/logger.wasm": &fstest.MapFile{Data: []byte{0x00, 0x61, 0x73, 0x6d}},
		"broken/manifest.toml":  &fstest.MapFile{Data: []byte("[[children")},
	}
}

func TestLocal_Resolve(t *testing.T) {
	l := NewLocal(testStore(), "pkg", "store")

	got, err := l.Resolve(context.Background(), "pkg://store/shell")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ResolvedURL != "pkg://store/shell" {
		t.Errorf("ResolvedURL = %q", got.ResolvedURL)
	}
	if !got.Declaration.HasProgram() {
		t.Error("declaration lost its program")
	}
	kids := got.Declaration.Children()
	if len(kids) != 1 || kids[0].Name != "logger" || kids[0].Startup != decl.Eager {
		t.Fatalf("children = %+v", kids)
	}

	// Package content is rooted at the component directory.
	if _, err := fs.ReadFile(got.Package.FS, "bin/shell.wasm"); err != nil {
		t.Errorf("package content missing binary: %v", err)
	}
}

func TestLocal_Errors(t *testing.T) {
	l := NewLocal(testStore(), "pkg", "store")
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"unknown component", "pkg://store/missing"},
		{"wrong authority", "pkg://other/shell"},
		{"wrong scheme", "boot://store/shell"},
		{"nested path", "pkg://store/shell/nested"},
		{"empty name", "pkg://store/"},
		{"broken manifest", "pkg://store/broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Resolve(ctx, tt.url); err == nil {
				t.Errorf("Resolve(%q) succeeded, want error", tt.url)
			}
		})
	}
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal(testStore(), "pkg", "store")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Resolve(ctx, "pkg://store/shell"); err == nil {
		t.Error("Resolve with cancelled context succeeded")
	}
}
