package router

import (
	"sync"
	"sync/atomic"

	"github.com/pathstack-dev/pathstack/pkg/route"
	"github.com/pathstack-dev/pathstack/pkg/selector"
)

// idCounter hands out process-unique ids for notifiers and
// subscriptions.
var idCounter atomic.Uint64

func nextID() uint64 {
	return idCounter.Add(1)
}

// subscription is one external callback registered on a notifier.
type subscription struct {
	id uint64
	fn func(selector.Checkpoint)
}

// Notifier is a node of the selector tree. It caches the checkpoint its
// rule produced from its parent's checkpoint and republishes changes.
//
// Child notifiers are always re-notified during a cascade, because a new
// route can change their match even when the parent checkpoint is
// value-equal. External callbacks fire only when this node's own
// checkpoint changed.
type Notifier struct {
	id     uint64
	router *Router
	parent *Notifier
	rule   selector.Rule

	mu         sync.RWMutex
	checkpoint selector.Checkpoint

	childMu  sync.Mutex
	children []*Notifier

	subMu sync.RWMutex
	subs  []subscription

	disposed atomic.Bool
}

// newRootNotifier builds the tree root, seeded with the reset checkpoint
// rather than computing one.
func newRootNotifier(r *Router) *Notifier {
	return &Notifier{
		id:         nextID(),
		router:     r,
		checkpoint: selector.Reset(),
	}
}

// NewNotifier creates a notifier under parent (the tree root when
// parent is nil), computes its checkpoint from the parent's current
// checkpoint and subscribes to the parent.
//
// Call Dispose when the notifier is no longer needed; an undisposed
// notifier keeps receiving notifications through the parent edge
// indefinitely.
func (r *Router) NewNotifier(parent *Notifier, rule selector.Rule) *Notifier {
	if parent == nil {
		parent = r.root
	}
	n := &Notifier{
		id:     nextID(),
		router: r,
		parent: parent,
		rule:   rule,
	}
	n.checkpoint = selector.Select(rule, parent.Checkpoint(), r.Route().Stack)
	parent.addChild(n)
	return n
}

// Checkpoint returns the current cached checkpoint.
func (n *Notifier) Checkpoint() selector.Checkpoint {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.checkpoint
}

// Matched reports whether the rule currently matches.
func (n *Notifier) Matched() bool {
	return n.Checkpoint().Matched()
}

// Subscribe registers a callback observing checkpoint changes, including
// transitions to and from NoMatch. The returned function unsubscribes.
func (n *Notifier) Subscribe(fn func(selector.Checkpoint)) func() {
	id := nextID()
	n.subMu.Lock()
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.subMu.Unlock()

	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs[i] = n.subs[len(n.subs)-1]
				n.subs = n.subs[:len(n.subs)-1]
				return
			}
		}
	}
}

// Dispose detaches the notifier from its parent and disposes its
// subtree. Disposal is a correctness requirement, not cleanup: a parent
// keeps notifying an undisposed child, and that child keeps forwarding
// into whatever it references.
func (n *Notifier) Dispose() {
	if !n.disposed.CompareAndSwap(false, true) {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	}

	n.childMu.Lock()
	children := append([]*Notifier{}, n.children...)
	n.children = nil
	n.childMu.Unlock()

	for _, child := range children {
		child.Dispose()
	}
}

// Disposed reports whether Dispose has run.
func (n *Notifier) Disposed() bool {
	return n.disposed.Load()
}

// reseed overwrites the root checkpoint and starts a cascade. Only the
// router's navigation path calls this.
func (n *Notifier) reseed(cp selector.Checkpoint, stack route.Stack) {
	n.mu.Lock()
	n.checkpoint = cp
	n.mu.Unlock()
	n.notifyChildren(stack)
}

// notify recomputes this node's checkpoint from its parent's current
// checkpoint, republishes to callbacks when it changed, and descends.
func (n *Notifier) notify(stack route.Stack) {
	if n.disposed.Load() {
		return
	}

	next := selector.Select(n.rule, n.parent.Checkpoint(), stack)

	n.mu.Lock()
	prev := n.checkpoint
	n.checkpoint = next
	n.mu.Unlock()

	if next != prev {
		n.notifySubscribers(next)
	}
	n.notifyChildren(stack)
}

// notifySubscribers fires callbacks with copy-before-notify so a
// callback may subscribe or unsubscribe during delivery.
func (n *Notifier) notifySubscribers(cp selector.Checkpoint) {
	n.subMu.RLock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.subMu.RUnlock()

	for _, sub := range subs {
		sub.fn(cp)
	}
}

// notifyChildren propagates depth-first over a copy of the child list.
func (n *Notifier) notifyChildren(stack route.Stack) {
	n.childMu.Lock()
	children := append([]*Notifier{}, n.children...)
	n.childMu.Unlock()

	for _, child := range children {
		child.notify(stack)
	}
}

func (n *Notifier) addChild(child *Notifier) {
	n.childMu.Lock()
	defer n.childMu.Unlock()
	n.children = append(n.children, child)
}

func (n *Notifier) removeChild(child *Notifier) {
	n.childMu.Lock()
	defer n.childMu.Unlock()
	for i, c := range n.children {
		if c.id == child.id {
			n.children[i] = n.children[len(n.children)-1]
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// countChildren returns the size of the subtree below this node.
func (n *Notifier) countChildren() int {
	n.childMu.Lock()
	children := append([]*Notifier{}, n.children...)
	n.childMu.Unlock()

	count := len(children)
	for _, child := range children {
		count += child.countChildren()
	}
	return count
}
