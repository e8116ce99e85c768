package resolver

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/wippyai/component-manager/decl"
)

// ManifestName is the manifest file expected inside each component's
// directory in a local store.
const ManifestName = "manifest.toml"

// Local resolves component URLs against an in-process package store.
//
// The store is an fs.FS with one directory per component:
//
//	<name>/manifest.toml    component declaration
//	<name>/...              package content
//
// A URL of the form <scheme>://<authority>/<name> resolves to the component
// directory <name>. URLs naming a different authority are rejected, so one
// Local can be registered per store.
type Local struct {
	fsys      fs.FS
	scheme    string
	authority string
}

// NewLocal creates a resolver for the store rooted at fsys, answering URLs
// with the given scheme and authority.
func NewLocal(fsys fs.FS, scheme, authority string) *Local {
	return &Local{
		fsys:      fsys,
		scheme:    scheme,
		authority: authority,
	}
}

// Resolve implements Resolver.
func (l *Local) Resolve(ctx context.Context, url string) (ResolvedComponent, error) {
	if err := ctx.Err(); err != nil {
		return ResolvedComponent{}, err
	}

	name, err := l.componentName(url)
	if err != nil {
		return ResolvedComponent{}, err
	}

	manifest, err := fs.ReadFile(l.fsys, name+"/"+ManifestName)
	if err != nil {
		return ResolvedComponent{}, fmt.Errorf("read manifest for %q: %w", name, err)
	}

	declaration, err := decl.DecodeManifest(manifest)
	if err != nil {
		return ResolvedComponent{}, fmt.Errorf("component %q: %w", name, err)
	}

	pkgFS, err := fs.Sub(l.fsys, name)
	if err != nil {
		return ResolvedComponent{}, fmt.Errorf("package root for %q: %w", name, err)
	}

	return ResolvedComponent{
		ResolvedURL: l.scheme + "://" + l.authority + "/" + name,
		Declaration: declaration,
		Package:     Package{FS: pkgFS},
	}, nil
}

func (l *Local) componentName(url string) (string, error) {
	prefix := l.scheme + "://" + l.authority + "/"
	rest, ok := strings.CutPrefix(url, prefix)
	if !ok {
		return "", fmt.Errorf("url %q is not served by store %s://%s", url, l.scheme, l.authority)
	}
	name := strings.Trim(rest, "/")
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("url %q does not name a store component", url)
	}
	return name, nil
}
