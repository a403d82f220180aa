package router

import (
	"context"

	"github.com/pathstack-dev/pathstack/pkg/route"
	"github.com/pathstack-dev/pathstack/pkg/selector"
)

// Kind classifies how a navigation reached the router.
type Kind uint8

const (
	// KindPush is a forward navigation committing a new history entry.
	KindPush Kind = iota + 1

	// KindReplace overwrites the current history entry.
	KindReplace

	// KindPop is externally driven navigation (back/forward).
	KindPop
)

// String returns the metric/trace label for the kind.
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindReplace:
		return "replace"
	case KindPop:
		return "pop"
	default:
		return "unknown"
	}
}

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// State is opaque state stored with the history entry.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState stores opaque state with the history entry.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}

// Navigation describes one navigation as seen by middleware. Route is
// the rebuilt route, populated once next() has run.
type Navigation struct {
	Context context.Context
	Path    string
	Kind    Kind
	State   any
	Router  *Router
	Route   route.Route
}

// pendingNavigation is a queued navigation awaiting an idle router.
type pendingNavigation struct {
	path    string
	options NavigateOptions
	kind    Kind
}

// Navigate commits a new location through the history collaborator,
// rebuilds the Route and runs the notifier cascade synchronously in the
// same call stack. A Navigate issued while a cascade is in flight (for
// example from a subscriber callback) is queued, returns nil
// immediately, and runs after the current cascade completes; the first
// error among drained navigations is returned to the caller that
// started the drain.
func (r *Router) Navigate(path string, opts ...NavigateOption) error {
	options := NavigateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	kind := KindPush
	if options.Replace {
		kind = KindReplace
	}
	return r.run(pendingNavigation{path: path, options: options, kind: kind})
}

// handlePop rebuilds the route after externally driven navigation.
func (r *Router) handlePop() {
	if err := r.run(pendingNavigation{kind: KindPop}); err != nil {
		r.logger.Error("pop navigation failed", "error", err)
	}
}

// run executes a navigation, or queues it when a cascade is already in
// flight. The first caller drains the queue before returning.
func (r *Router) run(p pendingNavigation) error {
	r.mu.Lock()
	if r.navigating {
		r.queue = append(r.queue, p)
		r.mu.Unlock()
		return nil
	}
	r.navigating = true
	r.mu.Unlock()

	err := r.commit(p)
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.navigating = false
			r.mu.Unlock()
			return err
		}
		next := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		if nerr := r.commit(next); nerr != nil {
			r.logger.Error("queued navigation failed", "path", next.path, "error", nerr)
			if err == nil {
				err = nerr
			}
		}
	}
}

// commit runs the navigation through the middleware chain. The history
// entry is written in the innermost handler, so a navigation the chain
// vetoes commits nothing and the route keeps reflecting the live
// location. Pop navigations already moved the cursor.
func (r *Router) commit(p pendingNavigation) error {
	path := p.path
	if p.kind == KindPop {
		path = r.history.Pathname()
	}

	nav := &Navigation{
		Context: context.Background(),
		Path:    path,
		Kind:    p.kind,
		State:   p.options.State,
		Router:  r,
	}

	handler := func() error {
		switch p.kind {
		case KindPush:
			r.history.Push(p.path, p.options.State)
		case KindReplace:
			r.history.Replace(p.path, p.options.State)
		}
		r.apply(nav)
		return nil
	}
	r.mu.Lock()
	middleware := make([]Middleware, len(r.middleware))
	copy(middleware, r.middleware)
	r.mu.Unlock()

	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := handler
		handler = func() error {
			return mw.Handle(nav, next)
		}
	}
	return handler()
}

// apply rebuilds the route from the live location, reseeds the root
// checkpoint and runs the cascade. Every live notifier recomputes
// synchronously before external route listeners fire.
func (r *Router) apply(nav *Navigation) {
	rt := route.NewRoute(r.history.Pathname(), r.history.Search(), r.history.Hash(), r.cfg)

	r.mu.Lock()
	r.route = rt
	r.mu.Unlock()
	nav.Route = rt

	r.root.reseed(selector.Reset(), rt.Stack)
	r.notifyRouteSubscribers(rt)
}
