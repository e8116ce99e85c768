// Package componentmanager is the instance-orchestration core of a
// component-based system: it maintains a live tree of component instances,
// resolves each instance's declaration on demand, and starts instances —
// including descendants declared for eager startup — through pluggable
// resolution and execution backends.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	component-manager/   Root package (overview only)
//	├── model/           The realm tree and binding algorithm
//	├── moniker/         Instance paths from the tree root
//	├── decl/            Component declarations and manifest decoding
//	├── resolver/        URL → declaration resolution; scheme registry
//	├── runner/          Execution backends (wazero, logging)
//	├── namespace/       Per-instance capability namespaces
//	├── dirio/           Asynchronous directory-open protocol
//	└── errors/          Structured error types
//
// # Quick Start
//
// Wire a model over a local component store and bind an instance:
//
//	reg := resolver.NewRegistry()
//	reg.Register("pkg", resolver.NewLocal(os.DirFS(store), "pkg", "store"))
//
//	m := model.New(model.Options{
//	    RootURL:  "pkg://store/root",
//	    Registry: reg,
//	    Runner:   runner.NewWasm(ctx),
//	})
//
//	target, _ := moniker.Parse("/shell/console")
//	if err := m.LookUpAndBindInstance(ctx, target); err != nil {
//	    log.Fatal(err)
//	}
//
// Binding is idempotent and safe under concurrency: each component is
// resolved at most once and started at most once, no matter how many callers
// race to bind it or its ancestors.
//
// # Thread Safety
//
// All public operations are safe for concurrent use. See package model for
// the locking discipline.
package componentmanager
