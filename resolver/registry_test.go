package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/wippyai/component-manager/decl"
	cmerrors "github.com/wippyai/component-manager/errors"
)

type stubResolver struct {
	resolved ResolvedComponent
	err      error
	calls    int
}

func (s *stubResolver) Resolve(ctx context.Context, url string) (ResolvedComponent, error) {
	s.calls++
	if s.err != nil {
		return ResolvedComponent{}, s.err
	}
	return s.resolved, nil
}

func TestRegistry_DispatchByScheme(t *testing.T) {
	reg := NewRegistry()
	pkg := &stubResolver{resolved: ResolvedComponent{
		ResolvedURL: "pkg://store/a",
		Declaration: decl.New(nil, nil),
	}}
	boot := &stubResolver{resolved: ResolvedComponent{
		ResolvedURL: "boot:///a",
		Declaration: decl.New(nil, nil),
	}}
	reg.Register("pkg", pkg)
	reg.Register("boot", boot)

	got, err := reg.Resolve(context.Background(), "pkg://store/a")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ResolvedURL != "pkg://store/a" {
		t.Errorf("ResolvedURL = %q", got.ResolvedURL)
	}
	if pkg.calls != 1 || boot.calls != 0 {
		t.Errorf("calls = pkg:%d boot:%d", pkg.calls, boot.calls)
	}
}

func TestRegistry_UnknownScheme(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(context.Background(), "pkg://store/a")
	if !errors.Is(err, &cmerrors.Error{Phase: cmerrors.PhaseResolve, Kind: cmerrors.KindResolverError}) {
		t.Fatalf("Resolve = %v, want resolver_error", err)
	}
}

func TestRegistry_MalformedURL(t *testing.T) {
	reg := NewRegistry()
	reg.Register("pkg", &stubResolver{})

	_, err := reg.Resolve(context.Background(), "no-scheme-here")
	if !errors.Is(err, &cmerrors.Error{Phase: cmerrors.PhaseResolve, Kind: cmerrors.KindInvalidInput}) {
		t.Fatalf("Resolve = %v, want invalid_input", err)
	}
}

func TestRegistry_ResolverFailureWrapped(t *testing.T) {
	reg := NewRegistry()
	cause := errors.New("store unreachable")
	reg.Register("pkg", &stubResolver{err: cause})

	_, err := reg.Resolve(context.Background(), "pkg://store/a")
	if !errors.Is(err, &cmerrors.Error{Phase: cmerrors.PhaseResolve, Kind: cmerrors.KindResolverError}) {
		t.Fatalf("Resolve = %v, want resolver_error", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Resolve did not wrap resolver cause: %v", err)
	}
}

func TestRegistry_ReplaceScheme(t *testing.T) {
	reg := NewRegistry()
	first := &stubResolver{resolved: ResolvedComponent{ResolvedURL: "pkg://store/first"}}
	second := &stubResolver{resolved: ResolvedComponent{ResolvedURL: "pkg://store/second"}}
	reg.Register("pkg", first)
	reg.Register("pkg", second)

	got, err := reg.Resolve(context.Background(), "pkg://store/x")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ResolvedURL != "pkg://store/second" {
		t.Errorf("registry did not replace resolver: %q", got.ResolvedURL)
	}
	if first.calls != 0 {
		t.Errorf("replaced resolver was called %d times", first.calls)
	}
}
