package selector

import (
	"errors"
	"testing"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []Token
		wantErr bool
	}{
		{name: "empty rule", tokens: nil, wantErr: false},
		{name: "valid mix", tokens: []Token{Root(), Name("a"), NextBlock()}, wantErr: false},
		{name: "zero token", tokens: []Token{{}}, wantErr: true},
		{name: "empty name", tokens: []Token{Name("")}, wantErr: true},
		{name: "nil pattern", tokens: []Token{NamePattern(nil)}, wantErr: true},
		{name: "empty property set", tokens: []Token{Where(nil)}, wantErr: true},
		{name: "zero matcher", tokens: []Token{Where(map[string]PropMatcher{"k": {}})}, wantErr: true},
		{name: "nil predicate", tokens: []Token{Where(map[string]PropMatcher{"k": Predicate(nil)})}, wantErr: true},
		{name: "nil pattern matcher", tokens: []Token{Where(map[string]PropMatcher{"k": Pattern(nil)})}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tokens...)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var re *RuleError
				if !errors.As(err, &re) {
					t.Errorf("error is %T, want *RuleError", err)
				}
			}
		})
	}
}

func TestMustRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRule did not panic on invalid token")
		}
	}()
	MustRule(Name(""))
}

func TestParseRule(t *testing.T) {
	cfg, err := route.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	stack := route.ParseStack("/users/user/id=7/~/edit", cfg)

	tests := []struct {
		name string
		text string
		want Checkpoint
	}{
		{name: "root and name", text: "/ users", want: Checkpoint{Block: 0, Context: 0}},
		{name: "name pattern", text: "re:^use", want: Checkpoint{Block: 0, Context: 0}},
		{name: "property exact", text: "users user id=7", want: Checkpoint{Block: 0, Context: 1}},
		{name: "property pattern", text: "users user id=re:^[0-9]+$", want: Checkpoint{Block: 0, Context: 1}},
		{name: "property absent", text: "users user deleted!", want: Checkpoint{Block: 0, Context: 1}},
		{name: "block token", text: "users user ~ edit", want: Checkpoint{Block: 1, Context: 0}},
		{name: "property miss", text: "users user id=9", want: NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule(tt.text, cfg)
			if err != nil {
				t.Fatalf("ParseRule(%q): %v", tt.text, err)
			}
			if got := Select(rule, Reset(), stack); got != tt.want {
				t.Errorf("Select = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	cfg, err := route.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	for _, text := range []string{"", "   ", "re:(", "id=re:(", "!"} {
		if _, err := ParseRule(text, cfg); err == nil {
			t.Errorf("ParseRule(%q) succeeded, want error", text)
		}
	}
}
