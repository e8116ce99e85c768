package model

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/component-manager/decl"
	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/errors"
	"github.com/wippyai/component-manager/moniker"
	"github.com/wippyai/component-manager/namespace"
	"github.com/wippyai/component-manager/resolver"
	"github.com/wippyai/component-manager/runner"
)

// Execution is the live-instance record created when an instance starts.
// Once written it is never cleared or replaced: this core does not stop or
// restart instances.
type Execution struct {
	// ResolvedURL is the URL the component was resolved as, recorded at
	// resolution time. It may differ from the URL the instance was created
	// with.
	ResolvedURL string

	// Namespace is the capability set populated for the instance.
	Namespace *namespace.Namespace

	// Outgoing is the client end of the instance's outgoing capability
	// directory.
	Outgoing *dirio.ClientEnd
}

// instanceState is the mutable per-node state, guarded by the realm's lock.
//
// declaration/resolved and execution are monotonic: written at most once,
// never cleared. children is populated atomically with the declaration and
// never structurally mutated afterwards.
type instanceState struct {
	url      string
	startup  decl.StartupMode
	resolved *resolver.ResolvedComponent
	children map[string]*Realm
	exec     *Execution

	// bound marks the first successful bind of this node. The eager-start
	// set is reported exactly once, by the call that flips it.
	bound bool
}

// realmEnv is the per-tree wiring shared by every realm, fixed at root
// construction and carried down by reference.
type realmEnv struct {
	registry  *resolver.Registry
	runner    runner.Runner
	populator namespace.Populator
	table     *dirio.Table
}

// Realm is one node of the instance tree. It bundles the node's mutable
// instance state with the resolver registry and default runner usable within
// its subtree.
//
// All mutation of a realm's instance state happens under its own lock; no
// operation ever holds more than one realm's lock at a time.
type Realm struct {
	env     *realmEnv
	moniker moniker.Moniker

	mu   sync.Mutex
	inst instanceState
}

func newRealm(env *realmEnv, m moniker.Moniker, url string, startup decl.StartupMode) *Realm {
	return &Realm{
		env:     env,
		moniker: m,
		inst: instanceState{
			url:     url,
			startup: startup,
		},
	}
}

// Moniker returns the realm's path from the root.
func (r *Realm) Moniker() moniker.Moniker {
	return r.moniker
}

// URL returns the component URL the realm was created with.
func (r *Realm) URL() string {
	return r.inst.url
}

// Startup returns the realm's startup mode.
func (r *Realm) Startup() decl.StartupMode {
	return r.inst.startup
}

// IsResolved reports whether the realm's declaration has been populated.
func (r *Realm) IsResolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inst.resolved != nil
}

// Declaration returns the memoized declaration, or nil if unresolved.
func (r *Realm) Declaration() *decl.Declaration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst.resolved == nil {
		return nil
	}
	return r.inst.resolved.Declaration
}

// Execution returns the live-instance record, or nil if the instance has not
// started. The returned record must be treated as read-only.
func (r *Realm) Execution() *Execution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inst.exec
}

// Children returns the realm's child nodes keyed by name, or nil if the
// realm is unresolved.
func (r *Realm) Children() map[string]*Realm {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inst.children == nil {
		return nil
	}
	out := make(map[string]*Realm, len(r.inst.children))
	for name, child := range r.inst.children {
		out[name] = child
	}
	return out
}

// resolve ensures the realm's declaration is populated.
func (r *Realm) resolve(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(ctx)
}

// resolveLocked performs the at-most-once resolution of the realm. The
// caller holds r.mu; the resolver call is a suspension point, so concurrent
// binds of the same node serialize here, which is exactly what yields one
// resolver call per node.
func (r *Realm) resolveLocked(ctx context.Context) error {
	if r.inst.resolved != nil {
		return nil
	}

	resolved, err := r.env.registry.Resolve(ctx, r.inst.url)
	if err != nil {
		// The node stays unresolved; a later caller may retry.
		return err
	}

	children := make(map[string]*Realm)
	for _, c := range resolved.Declaration.Children() {
		children[c.Name] = newRealm(r.env, r.moniker.Child(c.Name), c.URL, c.Startup)
	}

	r.inst.resolved = &resolved
	r.inst.children = children

	Logger().Debug("realm resolved",
		zap.String("moniker", r.moniker.String()),
		zap.String("url", r.inst.url),
		zap.Int("children", len(children)))
	return nil
}

// lookupChild resolves the realm if needed and returns the named child under
// a single lock acquisition. A missing child yields InstanceNotFound.
func (r *Realm) lookupChild(ctx context.Context, name string) (*Realm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.resolveLocked(ctx); err != nil {
		return nil, err
	}
	child, ok := r.inst.children[name]
	if !ok {
		return nil, errors.InstanceNotFound(r.moniker.Child(name).String())
	}
	return child, nil
}

// bindInstance resolves and starts the realm's instance as needed. It
// returns the direct children requiring eager startup, but only when this
// call performed the node's first bind: creating the execution for program
// components, or the trivial bind of components without one. Repeat binds
// return nothing, since the eager set was already scheduled the first time.
//
// The whole state machine runs under the realm's lock, so there can only be
// one task manipulating an instance's execution at a time. The lock covers
// only this node; eager children are bound by the caller after release.
func (r *Realm) bindInstance(ctx context.Context) ([]*Realm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bindInstanceLocked(ctx)
}

func (r *Realm) bindInstanceLocked(ctx context.Context) ([]*Realm, error) {
	if err := r.resolveLocked(ctx); err != nil {
		return nil, err
	}

	declaration := r.inst.resolved.Declaration
	if !declaration.HasProgram() {
		// Terminal: no execution is ever created. The first bind still
		// schedules the eager children.
		if r.inst.bound {
			return nil, nil
		}
		r.inst.bound = true
		return r.eagerChildrenLocked(), nil
	}

	if r.inst.exec != nil {
		// Already started; idempotent success.
		return nil, nil
	}

	ns, err := r.env.populator.Populate(ctx, r.moniker, declaration, r.inst.resolved.Package)
	if err != nil {
		return nil, errors.NamespaceCreationFailed(r.moniker.String(), err)
	}

	outgoingClient, outgoingServer, err := r.env.table.NewEndpoints()
	if err != nil {
		ns.Close()
		return nil, errors.NamespaceCreationFailed(r.moniker.String(), err)
	}

	err = r.env.runner.Start(ctx, runner.StartRequest{
		ResolvedURL: r.inst.resolved.ResolvedURL,
		Program:     declaration.Program,
		Package:     r.inst.resolved.Package,
		Namespace:   ns,
		Outgoing:    outgoingServer,
	})
	if err != nil {
		// No partial state: the execution is written only after the
		// runner accepts the request.
		ns.Close()
		outgoingClient.Close()
		return nil, errors.RunnerStartFailed(r.inst.resolved.ResolvedURL, err)
	}

	r.inst.exec = &Execution{
		ResolvedURL: r.inst.resolved.ResolvedURL,
		Namespace:   ns,
		Outgoing:    outgoingClient,
	}
	r.inst.bound = true

	Logger().Debug("instance started",
		zap.String("moniker", r.moniker.String()),
		zap.String("resolved_url", r.inst.exec.ResolvedURL))
	return r.eagerChildrenLocked(), nil
}

// bindInstanceAndOpen binds the realm and, while still holding its lock,
// issues an open against the execution's outgoing directory. The open is
// fire-and-forget: it answers through the supplied server endpoint, never
// through this call.
func (r *Realm) bindInstanceAndOpen(ctx context.Context, flags, mode uint32, path string, server *dirio.ServerEnd) ([]*Realm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	eager, err := r.bindInstanceLocked(ctx)
	if err != nil {
		return nil, err
	}
	if r.inst.exec == nil {
		return nil, errors.CapabilityDiscoveryFailed(r.moniker.String())
	}
	r.inst.exec.Outgoing.Open(flags, mode, path, server)
	return eager, nil
}

// eagerChildrenLocked collects the direct children declared Eager.
// The caller holds r.mu; the children map is immutable once populated, so
// the result stays valid after release.
func (r *Realm) eagerChildrenLocked() []*Realm {
	var eager []*Realm
	for _, c := range r.inst.resolved.Declaration.Children() {
		if c.Startup == decl.Eager {
			eager = append(eager, r.inst.children[c.Name])
		}
	}
	return eager
}
