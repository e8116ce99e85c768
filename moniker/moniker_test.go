package moniker

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"/", "/", false},
		{"", "/", false},
		{"/shell", "/shell", false},
		{"shell", "/shell", false},
		{"/shell/console", "/shell/console", false},
		{"/shell/console/", "/shell/console", false},
		{"/a//b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got := m.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestChildParent(t *testing.T) {
	m := Root.Child("shell").Child("console")

	if got := m.String(); got != "/shell/console" {
		t.Fatalf("String() = %q", got)
	}
	if got := m.Leaf(); got != "console" {
		t.Errorf("Leaf() = %q", got)
	}
	if got := m.Parent().String(); got != "/shell" {
		t.Errorf("Parent() = %q", got)
	}
	if got := m.Parent().Parent(); !got.IsRoot() {
		t.Errorf("Parent().Parent() = %v, want root", got)
	}
	if !Root.Parent().IsRoot() {
		t.Error("parent of root is not root")
	}
}

func TestEqual(t *testing.T) {
	a := New("x", "y")
	b := Root.Child("x").Child("y")
	c := New("x", "z")

	if !a.Equal(b) {
		t.Errorf("%v != %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%v == %v", a, c)
	}
	if a.Equal(Root) || !Root.Equal(New()) {
		t.Error("root equality broken")
	}
}

func TestImmutability(t *testing.T) {
	base := New("a")
	_ = base.Child("b")
	_ = base.Child("c")

	if got := base.String(); got != "/a" {
		t.Fatalf("base mutated by Child: %q", got)
	}

	path := base.Path()
	path[0] = "mutated"
	if got := base.String(); got != "/a" {
		t.Fatalf("base mutated through Path(): %q", got)
	}
}
