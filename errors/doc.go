// Package errors provides structured error types for the component-manager core.
//
// Errors are categorized by Phase (where in the binding pipeline the error
// occurred) and Kind (error category). The Error type carries the affected
// moniker, component URL, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindResolverError).
//		Moniker("/shell/console").
//		URL("pkg://store/console").
//		Detail("registry has no resolver for scheme %q", "pkg").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InstanceNotFound("/shell/missing")
//	err := errors.RunnerStartFailed(url, cause)
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on (Phase, Kind).
package errors
