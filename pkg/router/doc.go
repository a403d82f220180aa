// Package router holds the current route, performs navigation through a
// history collaborator, and owns the notifier tree that re-evaluates
// selector rules incrementally as navigation occurs.
//
// A Router is an explicit object: construct one with New around a
// history collaborator, or install a process-wide default with Init.
// Navigation is single-writer and synchronous: a Navigate call commits
// the location, rebuilds the Route and runs the whole notifier cascade
// before returning. A Navigate issued from inside a subscriber callback
// is queued and runs after the in-flight cascade completes.
//
// Notifiers form a tree mirroring selector nesting. Each node recomputes
// its checkpoint from its parent's result, so matching cost per
// navigation is proportional to selector depth, not selector count.
// Child nodes are always re-notified during a cascade; external callback
// subscribers only fire when the node's own checkpoint changed.
package router
