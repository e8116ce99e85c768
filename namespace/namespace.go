// Package namespace builds the capability sets visible to started instances.
package namespace

import (
	"context"
	"fmt"

	"github.com/wippyai/component-manager/decl"
	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/moniker"
	"github.com/wippyai/component-manager/resolver"
)

// Entry maps one namespace path to a directory connection.
type Entry struct {
	// Path is where the directory appears inside the instance, e.g. "/pkg".
	Path string

	// Directory is the client end of the connection serving the entry.
	Directory *dirio.ClientEnd
}

// Namespace is the set of directories visible to a started instance.
// It is assembled once during binding and not mutated afterwards.
type Namespace struct {
	entries []Entry
}

// Entries returns the namespace entries in creation order.
// The returned slice must not be modified.
func (n *Namespace) Entries() []Entry {
	return n.entries
}

// Get returns the directory mounted at path, or nil.
func (n *Namespace) Get(path string) *dirio.ClientEnd {
	for _, e := range n.entries {
		if e.Path == path {
			return e.Directory
		}
	}
	return nil
}

// Close tears down every entry's connection.
func (n *Namespace) Close() {
	for _, e := range n.entries {
		e.Directory.Close()
	}
}

// Populator builds the namespace for an instance from its declaration and
// package content. It is a collaborator of the orchestration core; the core
// treats population as a black box that either yields a complete namespace
// or fails without side effects.
type Populator interface {
	Populate(ctx context.Context, m moniker.Moniker, d *decl.Declaration, pkg resolver.Package) (*Namespace, error)
}

// PkgPath is where an instance's own package content is mounted.
const PkgPath = "/pkg"

// Default is the standard populator: it mounts the component's package
// content at /pkg, served through an endpoint pair from the given table.
type Default struct {
	table *dirio.Table
}

// NewDefault creates a populator allocating endpoints from table.
// A nil table uses the process-wide default.
func NewDefault(table *dirio.Table) *Default {
	if table == nil {
		table = dirio.DefaultTable()
	}
	return &Default{table: table}
}

// Populate implements Populator.
func (p *Default) Populate(ctx context.Context, m moniker.Moniker, d *decl.Declaration, pkg resolver.Package) (*Namespace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ns := &Namespace{}
	if pkg.FS == nil {
		return ns, nil
	}

	client, server, err := p.table.NewEndpoints()
	if err != nil {
		return nil, fmt.Errorf("create %s endpoints for %s: %w", PkgPath, m, err)
	}
	server.Serve(dirio.DirFS(pkg.FS))
	ns.entries = append(ns.entries, Entry{Path: PkgPath, Directory: client})

	return ns, nil
}
