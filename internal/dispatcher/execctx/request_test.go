package execctx

import "testing"

func TestStringSource(t *testing.T) {
	src := StringSource("$(sel).")

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{1, "."},
		{3, "l)."},
		{100, "$(sel)."},
	}
	for _, tc := range tests {
		if got := src.Preceding(tc.n); got != tc.want {
			t.Errorf("Preceding(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestRequestPreceding(t *testing.T) {
	req := New("foo", "source.js")
	if got := req.Preceding(4); got != "" {
		t.Errorf("Preceding without source = %q, want empty", got)
	}

	req.WithSource(StringSource("abc$"))
	if got := req.Preceding(1); got != "$" {
		t.Errorf("Preceding(1) = %q, want $", got)
	}
	if req.Token != "foo" || req.Label != "source.js" {
		t.Errorf("unexpected request %+v", req)
	}
}
