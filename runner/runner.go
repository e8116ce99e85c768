package runner

import (
	"context"

	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/namespace"
	"github.com/wippyai/component-manager/resolver"
)

// StartRequest carries everything a runner needs to execute a program.
type StartRequest struct {
	// ResolvedURL is the URL the component was resolved as.
	ResolvedURL string

	// Program is the declaration's launch data (e.g. "binary" names the
	// executable inside the package).
	Program map[string]string

	// Package is the component's content bundle.
	Package resolver.Package

	// Namespace is the capability set visible to the started program.
	Namespace *namespace.Namespace

	// Outgoing is the server end of the instance's outgoing capability
	// directory. The runner (or the program it launches) serves it.
	Outgoing *dirio.ServerEnd
}

// Runner executes prepared start requests.
//
// Start returns once the program has been dispatched; execution continues
// asynchronously. Implementations must be safe for concurrent use.
type Runner interface {
	Start(ctx context.Context, req StartRequest) error
}
