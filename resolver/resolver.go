package resolver

import (
	"context"
	"io/fs"

	"github.com/wippyai/component-manager/decl"
)

// Package is the content bundle accompanying a resolved declaration.
// FS is nil when the component ships no content.
type Package struct {
	FS fs.FS
}

// ResolvedComponent is the product of a successful resolution.
type ResolvedComponent struct {
	// ResolvedURL is the URL the component was actually resolved as.
	// It may differ from the requested URL, e.g. after redirection.
	ResolvedURL string
	Declaration *decl.Declaration
	Package     Package
}

// Resolver produces a declaration and package content for a component URL.
//
// Implementations must be safe for concurrent use. Resolve is a suspension
// point for the orchestration core: it may block on network or disk, and the
// core never holds more than the requesting node's lock across it.
type Resolver interface {
	Resolve(ctx context.Context, url string) (ResolvedComponent, error)
}
