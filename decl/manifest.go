package decl

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifest is the on-disk TOML shape of a component declaration.
type manifest struct {
	Program  map[string]string `toml:"program"`
	Children []childEntry      `toml:"children"`
}

type childEntry struct {
	Name    string `toml:"name"`
	URL     string `toml:"url"`
	Startup string `toml:"startup"`
}

// DecodeManifest parses a TOML component manifest into a Declaration.
//
// The manifest carries an optional [program] table of launch properties and
// zero or more [[children]] entries:
//
//	[program]
//	binary = "bin/app.wasm"
//
//	[[children]]
//	name = "logger"
//	url = "pkg://store/logger"
//	startup = "eager"
//
// Startup defaults to lazy when omitted.
func DecodeManifest(data []byte) (*Declaration, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest parse failed: %w", err)
	}

	children := make([]ChildDecl, 0, len(m.Children))
	seen := make(map[string]bool, len(m.Children))
	for i, c := range m.Children {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("children[%d] missing name", i)
		}
		if strings.TrimSpace(c.URL) == "" {
			return nil, fmt.Errorf("child %q missing url", c.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate child name %q", c.Name)
		}
		seen[c.Name] = true

		startup, err := parseStartup(c.Startup)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", c.Name, err)
		}
		children = append(children, ChildDecl{
			Name:    c.Name,
			URL:     c.URL,
			Startup: startup,
		})
	}

	return New(m.Program, children), nil
}

func parseStartup(s string) (StartupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lazy":
		return Lazy, nil
	case "eager":
		return Eager, nil
	default:
		return Lazy, fmt.Errorf("invalid startup mode %q", s)
	}
}
