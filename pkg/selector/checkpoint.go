package selector

// BeforeFirst is the context index of a checkpoint that has entered a
// block but not yet consumed a context.
const BeforeFirst = -1

// Checkpoint names the last block/context position a rule consumed.
// It is a value; producing a new one never mutates a prior one.
type Checkpoint struct {
	Block   int `json:"block"`
	Context int `json:"context"`
}

// NoMatch is the sentinel for a rule that failed to match. It propagates:
// selecting from NoMatch is always NoMatch.
var NoMatch = Checkpoint{Block: -1, Context: -1}

// Reset is the seed checkpoint for a fresh route: block zero, before the
// first context.
func Reset() Checkpoint {
	return Checkpoint{Block: 0, Context: BeforeFirst}
}

// Matched reports whether the checkpoint represents a successful match
// position rather than the NoMatch sentinel.
func (c Checkpoint) Matched() bool {
	return c.Block >= 0
}
