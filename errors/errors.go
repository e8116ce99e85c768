package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the binding pipeline the error occurred
type Phase string

const (
	PhaseLookup    Phase = "lookup"    // moniker resolution / tree walk
	PhaseResolve   Phase = "resolve"   // component URL resolution
	PhaseNamespace Phase = "namespace" // namespace population
	PhaseStart     Phase = "start"     // runner dispatch
	PhaseOpen      Phase = "open"      // outgoing-directory open
)

// Kind categorizes the error
type Kind string

const (
	KindInstanceNotFound    Kind = "instance_not_found"
	KindResolverError       Kind = "resolver_error"
	KindNamespaceCreation   Kind = "namespace_creation"
	KindCapabilityDiscovery Kind = "capability_discovery"
	KindRunnerStart         Kind = "runner_start"
	KindInvalidInput        Kind = "invalid_input"
)

// Error is the structured error type used throughout the orchestration core.
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Moniker string
	URL     string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Moniker != "" {
		b.WriteString(" at ")
		b.WriteString(e.Moniker)
	}

	if e.URL != "" {
		b.WriteString(": url ")
		b.WriteString(e.URL)
	}

	if e.Detail != "" {
		if e.URL != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Moniker sets the instance moniker
func (b *Builder) Moniker(m string) *Builder {
	b.err.Moniker = m
	return b
}

// URL sets the component URL
func (b *Builder) URL(url string) *Builder {
	b.err.URL = url
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InstanceNotFound reports a moniker segment with no matching child.
func InstanceNotFound(moniker string) *Error {
	return &Error{
		Phase:   PhaseLookup,
		Kind:    KindInstanceNotFound,
		Moniker: moniker,
		Detail:  "no such instance",
	}
}

// ResolveFailed reports a resolver that could not produce a declaration.
func ResolveFailed(url string, cause error) *Error {
	return &Error{
		Phase: PhaseResolve,
		Kind:  KindResolverError,
		URL:   url,
		Cause: cause,
	}
}

// NamespaceCreationFailed reports a namespace that could not be constructed.
func NamespaceCreationFailed(moniker string, cause error) *Error {
	return &Error{
		Phase:   PhaseNamespace,
		Kind:    KindNamespaceCreation,
		Moniker: moniker,
		Cause:   cause,
	}
}

// CapabilityDiscoveryFailed reports an open attempted against an instance
// with no running execution.
func CapabilityDiscoveryFailed(moniker string) *Error {
	return &Error{
		Phase:   PhaseOpen,
		Kind:    KindCapabilityDiscovery,
		Moniker: moniker,
		Detail:  "instance has no execution",
	}
}

// RunnerStartFailed reports a runner that rejected or failed the start request.
func RunnerStartFailed(url string, cause error) *Error {
	return &Error{
		Phase: PhaseStart,
		Kind:  KindRunnerStart,
		URL:   url,
		Cause: cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
