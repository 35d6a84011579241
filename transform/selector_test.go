package transform

import "testing"

func TestClassifySelector(t *testing.T) {
	tests := []struct {
		sel   string
		parts bool
		key   string
		kind  selectorKind
	}{
		{sel: ".foo", key: "foo", kind: selectorAccepted},
		{sel: ".foo-bar_baz", key: "foo-bar_baz", kind: selectorAccepted},
		{sel: ":root", key: ":root", kind: selectorAccepted},
		{sel: ":export", kind: selectorExport},
		{sel: "::part(header)", parts: true, key: "::part(header)", kind: selectorAccepted},
		{sel: ":part(header)", parts: true, key: ":part(header)", kind: selectorAccepted},
		{sel: "::part(header)", kind: selectorRejected},
		{sel: ".a .b", kind: selectorRejected},
		{sel: ".a > .b", kind: selectorRejected},
		{sel: ".a + .b", kind: selectorRejected},
		{sel: ".a ~ .b", kind: selectorRejected},
		{sel: ".a[data-x]", kind: selectorRejected},
		{sel: ".a:hover", kind: selectorRejected},
		{sel: ".a.b", kind: selectorRejected},
		{sel: "div", kind: selectorRejected},
		{sel: "#id", kind: selectorRejected},
		{sel: "*", kind: selectorRejected},
	}

	for _, tc := range tests {
		key, kind, _ := classifySelector(tc.sel, tc.parts)
		if kind != tc.kind {
			t.Errorf("%q (parts=%v): expected kind %v, got %v", tc.sel, tc.parts, tc.kind, kind)
			continue
		}
		if key != tc.key {
			t.Errorf("%q: expected key %q, got %q", tc.sel, tc.key, key)
		}
	}
}
