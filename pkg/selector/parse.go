package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

// patternPrefix marks a textual token as a regular expression.
const patternPrefix = "re:"

// ParseRule compiles the textual rule form used by the CLI into a Rule.
// Tokens are whitespace separated:
//
//	/            root anchor
//	<blockSep>   advance to the next block
//	name         literal context name
//	re:^us       context name pattern
//	key<sep>v    property equals v
//	key<sep>re:x property matches pattern
//	key!         property must be absent
//
// Predicate matchers have no textual form; declare those rules in code.
func ParseRule(text string, cfg route.Config) (Rule, error) {
	var tokens []Token

	for i, field := range strings.Fields(text) {
		switch {
		case field == "/":
			tokens = append(tokens, Root())

		case field == cfg.BlockSeparator:
			tokens = append(tokens, NextBlock())

		case strings.Contains(field, cfg.ParamSeparator):
			key, value, _ := strings.Cut(field, cfg.ParamSeparator)
			matcher := Exact(value)
			if strings.HasPrefix(value, patternPrefix) {
				re, err := compilePattern(value, i)
				if err != nil {
					return Rule{}, err
				}
				matcher = Pattern(re)
			}
			tokens = append(tokens, Where(map[string]PropMatcher{key: matcher}))

		case strings.HasSuffix(field, "!"):
			key := strings.TrimSuffix(field, "!")
			if key == "" {
				return Rule{}, &RuleError{Index: i, Reason: "absent matcher needs a key"}
			}
			tokens = append(tokens, Where(map[string]PropMatcher{key: Absent()}))

		case strings.HasPrefix(field, patternPrefix):
			re, err := compilePattern(field, i)
			if err != nil {
				return Rule{}, err
			}
			tokens = append(tokens, NamePattern(re))

		default:
			tokens = append(tokens, Name(field))
		}
	}

	if len(tokens) == 0 {
		return Rule{}, &RuleError{Index: 0, Reason: "rule text is empty"}
	}
	return New(tokens...)
}

func compilePattern(field string, index int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(strings.TrimPrefix(field, patternPrefix))
	if err != nil {
		return nil, &RuleError{Index: index, Reason: fmt.Sprintf("bad pattern: %v", err)}
	}
	return re, nil
}
