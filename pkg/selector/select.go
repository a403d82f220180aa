package selector

import "github.com/pathstack-dev/pathstack/pkg/route"

// Select walks the rule tokens left to right against stack, threading a
// working copy of cp. It returns the checkpoint as advanced by the last
// consumed token, or NoMatch.
//
// Selecting from NoMatch is NoMatch without evaluating the rule at all.
// The short-circuit is mandatory: once an ancestor failed, block and
// context indices carry no meaning for any descendant.
func Select(r Rule, cp Checkpoint, stack route.Stack) Checkpoint {
	if !cp.Matched() {
		return NoMatch
	}

	for _, tok := range r.tokens {
		switch tok.kind {
		case tokenRoot:
			if cp.Block != 0 || cp.Context != BeforeFirst {
				return NoMatch
			}

		case tokenBlock:
			cp.Block++
			cp.Context = BeforeFirst
			if cp.Block >= len(stack) {
				return NoMatch
			}

		case tokenName, tokenPattern:
			cp.Context++
			if cp.Block >= len(stack) || cp.Context >= len(stack[cp.Block]) {
				return NoMatch
			}
			name := stack[cp.Block][cp.Context].Name
			if tok.kind == tokenName {
				if name != tok.name {
					return NoMatch
				}
			} else if !tok.pattern.MatchString(name) {
				return NoMatch
			}

		case tokenProps:
			// Property matchers apply to the current position; a block
			// that has not entered a context yet has nothing to test.
			if cp.Context == BeforeFirst {
				return NoMatch
			}
			if cp.Block >= len(stack) || cp.Context >= len(stack[cp.Block]) {
				return NoMatch
			}
			ctx := stack[cp.Block][cp.Context]
			for _, pt := range tok.props {
				value, present := ctx.Property(pt.key)
				if !pt.matcher.test(value, present) {
					return NoMatch
				}
			}
		}
	}

	return cp
}
