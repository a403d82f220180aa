// Package selector tests ordered matcher rules against a parsed route
// stack, threading a checkpoint so nested rules resume where their
// ancestor stopped.
//
// A Rule is built once from closed token constructors (Root, NextBlock,
// Name, NamePattern, Where) and validated at construction; a malformed
// rule fails fast with a *RuleError instead of silently mismatching on
// every navigation. Select is pure: it never mutates the checkpoint it
// is given, so sibling rules may read the same ancestor checkpoint
// within one notification pass.
package selector
