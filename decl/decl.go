// Package decl models component declarations: the resolved description of a
// component's program, children, and startup modes.
package decl

// StartupMode controls whether a child starts automatically with its parent.
type StartupMode int

const (
	// Lazy children start only on explicit demand.
	Lazy StartupMode = iota
	// Eager children start automatically when their parent starts.
	Eager
)

func (m StartupMode) String() string {
	switch m {
	case Lazy:
		return "lazy"
	case Eager:
		return "eager"
	default:
		return "unknown"
	}
}

// ChildDecl names one child of a component and how to obtain it.
type ChildDecl struct {
	Name    string
	URL     string
	Startup StartupMode
}

// Declaration is the resolved description of a component. The orchestration
// core treats it as opaque beyond three projections: whether the component has
// a program, its child list, and each child's startup mode.
type Declaration struct {
	// Program holds runner-specific launch data, keyed by property name
	// (e.g. "binary"). A nil map means the component declares no program.
	Program map[string]string

	children []ChildDecl
}

// New builds a declaration from launch data and a child list.
// The child slice is copied.
func New(program map[string]string, children []ChildDecl) *Declaration {
	d := &Declaration{Program: program}
	if len(children) > 0 {
		d.children = make([]ChildDecl, len(children))
		copy(d.children, children)
	}
	return d
}

// HasProgram reports whether the component declares a program to run.
func (d *Declaration) HasProgram() bool {
	return d.Program != nil
}

// Children returns the declared children in declaration order.
// The returned slice must not be modified.
func (d *Declaration) Children() []ChildDecl {
	return d.children
}
