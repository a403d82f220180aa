package selector

import "regexp"

// matcherKind discriminates the closed set of property matcher variants.
type matcherKind uint8

const (
	matcherExact matcherKind = iota + 1
	matcherPattern
	matcherPredicate
	matcherAbsent
)

// PropMatcher is one test against a context property. Construct with
// Exact, Pattern, Predicate or Absent; the zero value is invalid and is
// rejected at rule construction.
type PropMatcher struct {
	kind    matcherKind
	exact   string
	pattern *regexp.Regexp
	pred    func(string) bool
}

// Exact matches a property whose merged value equals v.
func Exact(v string) PropMatcher {
	return PropMatcher{kind: matcherExact, exact: v}
}

// Pattern matches a property whose merged value matches re.
func Pattern(re *regexp.Regexp) PropMatcher {
	return PropMatcher{kind: matcherPattern, pattern: re}
}

// Predicate matches a property whose merged value satisfies fn.
func Predicate(fn func(string) bool) PropMatcher {
	return PropMatcher{kind: matcherPredicate, pred: fn}
}

// Absent matches only when the key does not exist in the context at all.
func Absent() PropMatcher {
	return PropMatcher{kind: matcherAbsent}
}

// test applies the matcher to a lookup result.
func (m PropMatcher) test(value string, present bool) bool {
	switch m.kind {
	case matcherExact:
		return present && value == m.exact
	case matcherPattern:
		return present && m.pattern.MatchString(value)
	case matcherPredicate:
		return present && m.pred(value)
	case matcherAbsent:
		return !present
	default:
		return false
	}
}

// valid reports whether the matcher was built by a constructor and its
// capability is non-nil.
func (m PropMatcher) valid() bool {
	switch m.kind {
	case matcherExact, matcherAbsent:
		return true
	case matcherPattern:
		return m.pattern != nil
	case matcherPredicate:
		return m.pred != nil
	default:
		return false
	}
}
