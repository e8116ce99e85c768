package model

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/component-manager/decl"
	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/moniker"
	"github.com/wippyai/component-manager/namespace"
	"github.com/wippyai/component-manager/resolver"
	"github.com/wippyai/component-manager/runner"
)

// Options configures a Model.
type Options struct {
	// RootURL is the component URL of the tree root.
	RootURL string

	// Registry routes component URLs to resolvers. Required.
	Registry *resolver.Registry

	// Runner is the default runner for the whole tree. Required.
	Runner runner.Runner

	// Populator builds instance namespaces. Defaults to the standard
	// populator over Table.
	Populator namespace.Populator

	// Table allocates directory endpoints. Defaults to the process-wide
	// table.
	Table *dirio.Table
}

// Model owns the root of the instance tree and exposes the binding
// operations used by the rest of the system.
//
// Model is safe for concurrent use: all shared mutable state lives in the
// per-realm instance records, each guarded by its own lock.
type Model struct {
	root *Realm
}

// New creates a model with an unresolved root realm for opts.RootURL.
// The root starts Lazy: nothing resolves or runs until a bind request
// arrives.
func New(opts Options) *Model {
	table := opts.Table
	if table == nil {
		table = dirio.DefaultTable()
	}
	populator := opts.Populator
	if populator == nil {
		populator = namespace.NewDefault(table)
	}

	env := &realmEnv{
		registry:  opts.Registry,
		runner:    opts.Runner,
		populator: populator,
		table:     table,
	}
	return &Model{
		root: newRealm(env, moniker.Root, opts.RootURL, decl.Lazy),
	}
}

// Root returns the root realm.
func (m *Model) Root() *Realm {
	return m.root
}

// LookUpRealm walks the tree from the root along the moniker's segments,
// resolving each node on the way, and returns the realm it names. The
// returned realm always has a populated declaration. Only one node's lock is
// held at a time during the walk; nodes strictly on the path may be
// memoize-resolved as a side effect, nothing else is mutated.
func (m *Model) LookUpRealm(ctx context.Context, target moniker.Moniker) (*Realm, error) {
	cur := m.root
	for _, segment := range target.Path() {
		next, err := cur.lookupChild(ctx, segment)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	// The final node is resolved too, so callers always get a realm with a
	// declaration, even for the zero-segment walk to the root.
	if err := cur.resolve(ctx); err != nil {
		return nil, err
	}
	return cur, nil
}

// LookUpAndBindInstance resolves the realm named by the moniker and binds
// it, then transitively binds every descendant that must start eagerly.
func (m *Model) LookUpAndBindInstance(ctx context.Context, target moniker.Moniker) error {
	realm, err := m.LookUpRealm(ctx, target)
	if err != nil {
		return err
	}
	return m.BindInstance(ctx, realm)
}

// BindInstance binds the given realm and drains its eager-start set.
// Binding an already-running instance is a cheap idempotent success.
func (m *Model) BindInstance(ctx context.Context, realm *Realm) error {
	eager, err := realm.bindInstance(ctx)
	if err != nil {
		return err
	}
	return m.bindEagerChildren(ctx, eager)
}

// BindInstanceAndOpen binds the realm and opens path inside its outgoing
// capability directory with the supplied flags, mode, and server endpoint.
// The open itself is fire-and-forget; it answers asynchronously to whoever
// holds the endpoint's peer. Eager descendants are bound after the open is
// issued.
func (m *Model) BindInstanceAndOpen(ctx context.Context, realm *Realm, flags, mode uint32, path string, server *dirio.ServerEnd) error {
	eager, err := realm.bindInstanceAndOpen(ctx, flags, mode, path, server)
	if err != nil {
		return err
	}
	return m.bindEagerChildren(ctx, eager)
}

// bindEagerChildren drains the eager-start set as an explicit work list, so
// fan-out does not grow the call stack with tree depth. Order beyond LIFO
// popping is unspecified; safety comes from per-realm locking. A failure
// aborts the remaining work; already-started instances stay started.
func (m *Model) bindEagerChildren(ctx context.Context, work []*Realm) error {
	for len(work) > 0 {
		realm := work[len(work)-1]
		work = work[:len(work)-1]

		more, err := realm.bindInstance(ctx)
		if err != nil {
			Logger().Warn("eager bind aborted",
				zap.String("moniker", realm.Moniker().String()),
				zap.Error(err))
			return err
		}
		work = append(work, more...)
	}
	return nil
}
