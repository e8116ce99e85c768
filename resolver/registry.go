package resolver

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/component-manager/errors"
)

// Registry routes component URLs to resolvers by URL scheme.
//
// A registry is injected at root-realm construction and carried down the
// instance tree by reference; it is never consulted through global state.
//
// Registry is thread-safe.
type Registry struct {
	resolvers map[string]Resolver
	mu        sync.RWMutex
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
	}
}

// Register makes r the resolver for the given URL scheme.
// Registering a scheme twice replaces the previous resolver.
func (reg *Registry) Register(scheme string, r Resolver) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.resolvers[scheme] = r
}

// Get returns the resolver registered for scheme, or nil.
func (reg *Registry) Get(scheme string) Resolver {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.resolvers[scheme]
}

// Resolve dispatches url to the resolver registered for its scheme.
func (reg *Registry) Resolve(ctx context.Context, url string) (ResolvedComponent, error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok || scheme == "" {
		return ResolvedComponent{}, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			URL(url).
			Detail("component url has no scheme").
			Build()
	}

	r := reg.Get(scheme)
	if r == nil {
		return ResolvedComponent{}, errors.New(errors.PhaseResolve, errors.KindResolverError).
			URL(url).
			Detail("no resolver registered for scheme %q", scheme).
			Build()
	}

	resolved, err := r.Resolve(ctx, url)
	if err != nil {
		return ResolvedComponent{}, errors.ResolveFailed(url, err)
	}

	Logger().Debug("resolved component",
		zap.String("url", url),
		zap.String("resolved_url", resolved.ResolvedURL))
	return resolved, nil
}
