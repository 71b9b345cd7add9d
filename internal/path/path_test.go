package path

import "testing"

func TestMatchesSubtree(t *testing.T) {
	resource := Parse("/a123/b567")

	tests := []struct {
		uri          string
		matchSubtree bool
		want         bool
	}{
		{"/", true, false},
		{"/a", true, false},
		{"/a123", true, false},
		{"/a123/b567", true, true},
		{"/a123/b567/c89", true, true},
		{"/a123/b567/c89/d00", true, true},

		{"/", false, false},
		{"/a", false, false},
		{"/a123", false, false},
		{"/a123/b567", false, true},
		{"/a123/b567/c89", false, false},
		{"/a123/b567/c89/d00", false, false},
	}

	for _, tt := range tests {
		got := resource.Matches(Parse(tt.uri), tt.matchSubtree)
		if got != tt.want {
			t.Errorf("Matches(%q, subtree=%v) = %v, want %v", tt.uri, tt.matchSubtree, got, tt.want)
		}
	}
}

func TestMatchesIsReflexive(t *testing.T) {
	p := Parse("/a/b/c")
	if !p.Matches(p, false) {
		t.Error("expected a path to match itself without match-subtree")
	}
	if !p.Matches(p, true) {
		t.Error("expected a path to match itself with match-subtree")
	}
}

func TestRootPath(t *testing.T) {
	if !Root().IsRoot() {
		t.Error("expected Root() to be root")
	}
	if Root().String() != "/" {
		t.Errorf("expected root string to be '/', got %q", Root().String())
	}
}
