package model

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/moniker"
	"github.com/wippyai/component-manager/namespace"
	"github.com/wippyai/component-manager/resolver"
	"github.com/wippyai/component-manager/runner"
)

// TestStoreBackedTree exercises the full pipeline: local store resolution,
// namespace population from package content, and runner dispatch.
func TestStoreBackedTree(t *testing.T) {
	store := fstest.MapFS{
		"root/manifest.toml": &fstest.MapFile{Data: []byte(`
[[children]]
name = "shell"
url = "pkg://store/shell"
startup = "eager"
`)},
		"shell/manifest.toml": &fstest.MapFile{Data: []byte(`
[program]
binary = "bin/shell.wasm"
`)},
		"shell/bin/shell.wasm": &fstest.MapFile{Data: []byte{0x00, 0x61, 0x73, 0x6d}},
	}

	reg := resolver.NewRegistry()
	reg.Register("pkg", resolver.NewLocal(store, "pkg", "store"))

	table := dirio.NewTable()
	run := runner.NewLog(nil)
	run.Outgoing = dirio.DirFS(fstest.MapFS{"svc/echo/x": &fstest.MapFile{Data: []byte("y")}})

	m := New(Options{
		RootURL:  "pkg://store/root",
		Registry: reg,
		Runner:   run,
		Table:    table,
	})
	ctx := context.Background()

	if err := m.LookUpAndBindInstance(ctx, moniker.Root); err != nil {
		t.Fatalf("bind root: %v", err)
	}

	starts := run.Starts()
	if len(starts) != 1 {
		t.Fatalf("starts = %d, want 1 (only the shell has a program)", len(starts))
	}
	req := starts[0]
	if req.ResolvedURL != "pkg://store/shell" {
		t.Errorf("ResolvedURL = %q", req.ResolvedURL)
	}
	if req.Namespace.Get(namespace.PkgPath) == nil {
		t.Error("started instance has no /pkg entry")
	}
	if req.Program["binary"] != "bin/shell.wasm" {
		t.Errorf("program = %+v", req.Program)
	}

	// The shell's outgoing directory is reachable through bind-and-open.
	shell := m.Root().Children()["shell"]
	if shell == nil || shell.Execution() == nil {
		t.Fatal("eager shell not running")
	}
	subClient, subServer, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	if err := m.BindInstanceAndOpen(ctx, shell, 0, 0, "svc/echo", subServer); err != nil {
		t.Fatalf("BindInstanceAndOpen: %v", err)
	}
	if subClient.Handle() == 0 {
		t.Error("outgoing open closed the server end")
	}
}
