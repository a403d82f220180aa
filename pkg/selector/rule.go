package selector

import (
	"fmt"
	"regexp"
	"sort"
)

// tokenKind discriminates the closed set of rule token variants.
type tokenKind uint8

const (
	tokenRoot tokenKind = iota + 1
	tokenBlock
	tokenName
	tokenPattern
	tokenProps
)

// propTest binds one property key to its matcher.
type propTest struct {
	key     string
	matcher PropMatcher
}

// Token is one matcher step of a rule. Construct with Root, NextBlock,
// Name, NamePattern or Where; the zero value is invalid.
type Token struct {
	kind    tokenKind
	name    string
	pattern *regexp.Regexp
	props   []propTest
}

// Root anchors the rule at the very first block/context position.
func Root() Token {
	return Token{kind: tokenRoot}
}

// NextBlock advances the checkpoint to the next block, before its first
// context.
func NextBlock() Token {
	return Token{kind: tokenBlock}
}

// Name advances to the next context and requires its name to equal name.
func Name(name string) Token {
	return Token{kind: tokenName, name: name}
}

// NamePattern advances to the next context and requires its name to
// match re.
func NamePattern(re *regexp.Regexp) Token {
	return Token{kind: tokenPattern, pattern: re}
}

// Where tests properties of the current context without advancing. All
// keys must pass; keys are evaluated in sorted order.
func Where(props map[string]PropMatcher) Token {
	tests := make([]propTest, 0, len(props))
	for key, m := range props {
		tests = append(tests, propTest{key: key, matcher: m})
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].key < tests[j].key })
	return Token{kind: tokenProps, props: tests}
}

// Rule is an ordered, immutable sequence of matcher tokens. Build with
// New (or MustRule) once per call site.
type Rule struct {
	tokens []Token
}

// RuleError reports a malformed token at rule construction.
type RuleError struct {
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("selector: invalid rule token %d: %s", e.Index, e.Reason)
}

// New validates the tokens and builds a rule. Unrecognized token shapes,
// empty names, nil patterns, nil predicates and empty property sets fail
// with a *RuleError.
func New(tokens ...Token) (Rule, error) {
	for i, tok := range tokens {
		switch tok.kind {
		case tokenRoot, tokenBlock:
			// No payload to validate.
		case tokenName:
			if tok.name == "" {
				return Rule{}, &RuleError{Index: i, Reason: "name must not be empty"}
			}
		case tokenPattern:
			if tok.pattern == nil {
				return Rule{}, &RuleError{Index: i, Reason: "name pattern must not be nil"}
			}
		case tokenProps:
			if len(tok.props) == 0 {
				return Rule{}, &RuleError{Index: i, Reason: "property matcher must test at least one key"}
			}
			for _, pt := range tok.props {
				if !pt.matcher.valid() {
					return Rule{}, &RuleError{
						Index:  i,
						Reason: fmt.Sprintf("unsupported matcher for property %q", pt.key),
					}
				}
			}
		default:
			return Rule{}, &RuleError{Index: i, Reason: "unsupported token shape"}
		}
	}
	return Rule{tokens: tokens}, nil
}

// MustRule is New, panicking on error. For rules declared at fixed call
// sites where a malformed rule is a programming error.
func MustRule(tokens ...Token) Rule {
	r, err := New(tokens...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of tokens.
func (r Rule) Len() int {
	return len(r.tokens)
}
