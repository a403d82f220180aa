package route

import (
	"reflect"
	"testing"
)

func mustConfig(t *testing.T, opts ...Option) Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func TestParseStack(t *testing.T) {
	cfg := mustConfig(t)

	tests := []struct {
		name     string
		pathname string
		want     Stack
	}{
		{
			name:     "empty pathname",
			pathname: "",
			want:     nil,
		},
		{
			name:     "root",
			pathname: "/",
			want:     nil,
		},
		{
			name:     "single context",
			pathname: "/users",
			want:     Stack{{{Name: "users"}}},
		},
		{
			name:     "duplicate and trailing slashes",
			pathname: "//users///list//",
			want:     Stack{{{Name: "users"}, {Name: "list"}}},
		},
		{
			name:     "property accumulation",
			pathname: "/users/=male/age=45/age=50",
			want: Stack{{{
				Name: "users",
				Properties: []Property{
					{Key: "", Value: "male"},
					{Key: "age", Value: "45 50"},
				},
			}}},
		},
		{
			name:     "separator at position zero is a context name",
			pathname: "/~/x",
			want:     Stack{{{Name: "~"}, {Name: "x"}}},
		},
		{
			name:     "block boundary",
			pathname: "/x/~/y",
			want:     Stack{{{Name: "x"}}, {{Name: "y"}}},
		},
		{
			name:     "trailing block separator opens nothing",
			pathname: "/x/~",
			want:     Stack{{{Name: "x"}}},
		},
		{
			name:     "consecutive separators name the next block",
			pathname: "/x/~/~/y",
			want:     Stack{{{Name: "x"}}, {{Name: "~"}, {Name: "y"}}},
		},
		{
			name:     "block first segment forced to context name",
			pathname: "/x/~/a=b/y",
			want: Stack{
				{{Name: "x"}},
				{{Name: "a=b"}, {Name: "y"}},
			},
		},
		{
			name:     "three block scenario",
			pathname: "/users/user/=123/~/edit/tab=delete/~/confirm",
			want: Stack{
				{
					{Name: "users"},
					{Name: "user", Properties: []Property{{Key: "", Value: "123"}}},
				},
				{
					{Name: "edit", Properties: []Property{{Key: "tab", Value: "delete"}}},
				},
				{
					{Name: "confirm"},
				},
			},
		},
		{
			name:     "percent decoding",
			pathname: "/caf%C3%A9/note=a%20b",
			want: Stack{{{
				Name:       "café",
				Properties: []Property{{Key: "note", Value: "a b"}},
			}}},
		},
		{
			name:     "malformed escape passes through",
			pathname: "/100%",
			want:     Stack{{{Name: "100%"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStack(tt.pathname, cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStack(%q) = %#v, want %#v", tt.pathname, got, tt.want)
			}
		})
	}
}

func TestParseStackCustomSeparators(t *testing.T) {
	cfg := mustConfig(t, WithBlockSeparator("-"), WithParamSeparator(","))

	got := ParseStack("/a/k,v/-/b", cfg)
	want := Stack{
		{{Name: "a", Properties: []Property{{Key: "k", Value: "v"}}}},
		{{Name: "b"}},
	}
	if !got.Equal(want) {
		t.Errorf("ParseStack = %#v, want %#v", got, want)
	}

	// The default separators carry no meaning under this configuration.
	got = ParseStack("/a/k=v", cfg)
	want = Stack{{{Name: "a"}, {Name: "k=v"}}}
	if !got.Equal(want) {
		t.Errorf("ParseStack = %#v, want %#v", got, want)
	}
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   map[string]string
	}{
		{name: "empty", search: "", want: nil},
		{name: "bare question mark", search: "?", want: nil},
		{name: "single pair", search: "?a=1", want: map[string]string{"a": "1"}},
		{name: "no leading question mark", search: "a=1&b=2", want: map[string]string{"a": "1", "b": "2"}},
		{name: "accumulation", search: "?tag=go&tag=web", want: map[string]string{"tag": "go web"}},
		{name: "missing value", search: "?flag", want: map[string]string{"flag": ""}},
		{name: "empty parts dropped", search: "?a=1&&b=2&", want: map[string]string{"a": "1", "b": "2"}},
		{name: "decoding", search: "?q=a+b%21", want: map[string]string{"q": "a b!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSearch(tt.search)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSearch(%q) = %#v, want %#v", tt.search, got, tt.want)
			}
		})
	}
}

func TestParseHash(t *testing.T) {
	if got := ParseHash("#section-2"); got != "section-2" {
		t.Errorf("ParseHash = %q, want %q", got, "section-2")
	}
	if got := ParseHash("plain"); got != "plain" {
		t.Errorf("ParseHash = %q, want %q", got, "plain")
	}
	if got := ParseHash(""); got != "" {
		t.Errorf("ParseHash = %q, want empty", got)
	}
}

func TestContextProperty(t *testing.T) {
	ctx := Context{Name: "user", Properties: []Property{{Key: "id", Value: "7"}}}
	if v, ok := ctx.Property("id"); !ok || v != "7" {
		t.Errorf("Property(id) = %q, %v", v, ok)
	}
	if _, ok := ctx.Property("missing"); ok {
		t.Error("Property(missing) reported present")
	}
}

func TestNewRoute(t *testing.T) {
	cfg := mustConfig(t)
	rt := NewRoute("/users/~/edit", "?tab=1", "#top", cfg)

	if len(rt.Stack) != 2 {
		t.Fatalf("Stack has %d blocks, want 2", len(rt.Stack))
	}
	if rt.Search["tab"] != "1" {
		t.Errorf("Search[tab] = %q, want %q", rt.Search["tab"], "1")
	}
	if rt.Hash != "top" {
		t.Errorf("Hash = %q, want %q", rt.Hash, "top")
	}
	if got := rt.Path(); got != "/users/~/edit" {
		t.Errorf("Path() = %q, want %q", got, "/users/~/edit")
	}
}
