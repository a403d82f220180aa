package router

import (
	"log/slog"
	"sync"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

// Location exposes the components of a resolved location. Consumed once
// per Route construction.
type Location interface {
	Pathname() string
	Search() string
	Hash() string
}

// History is the external collaborator that commits navigation. OnPop
// listeners fire when navigation is driven externally (back/forward) so
// the router can rebuild its route and renotify.
type History interface {
	Location
	Push(path string, state any)
	Replace(path string, state any)
	Back()
	Forward()
	OnPop(fn func())
}

// Router is the navigation authority: it holds the current immutable
// Route and the root of the notifier tree.
type Router struct {
	cfg        route.Config
	history    History
	logger     *slog.Logger
	middleware []Middleware

	mu         sync.Mutex
	route      route.Route
	navigating bool
	queue      []pendingNavigation

	root *Notifier

	subMu sync.RWMutex
	subs  map[uint64]func(route.Route)
}

// Option configures a Router at construction.
type Option func(*Router)

// WithConfig sets the separator configuration. The config must already
// be validated (route.NewConfig).
func WithConfig(cfg route.Config) Option {
	return func(r *Router) {
		r.cfg = cfg
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMiddleware appends navigation middleware at construction.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// New builds a Router over a history collaborator. The initial Route is
// read from the live location at call time, and the router registers for
// externally driven navigation.
func New(history History, opts ...Option) *Router {
	r := &Router{
		cfg:     route.DefaultConfig(),
		history: history,
		logger:  slog.Default(),
		subs:    make(map[uint64]func(route.Route)),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.route = route.NewRoute(history.Pathname(), history.Search(), history.Hash(), r.cfg)
	r.root = newRootNotifier(r)
	history.OnPop(r.handlePop)
	return r
}

// Route returns the current immutable route snapshot.
func (r *Router) Route() route.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Config returns the separator configuration.
func (r *Router) Config() route.Config {
	return r.cfg
}

// Root returns the root of the notifier tree. Its checkpoint is always
// the reset position for the current route.
func (r *Router) Root() *Notifier {
	return r.root
}

// Use appends navigation middleware. Safe to call concurrently with
// navigation; the new middleware takes effect from the next commit.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Subscribe registers an external listener observing every route change.
// The returned function unsubscribes it.
func (r *Router) Subscribe(fn func(route.Route)) func() {
	id := nextID()
	r.subMu.Lock()
	r.subs[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

// Back delegates to the history collaborator. The route rebuild arrives
// through the pop listener.
func (r *Router) Back() {
	r.history.Back()
}

// Forward delegates to the history collaborator.
func (r *Router) Forward() {
	r.history.Forward()
}

// NotifierCount returns the number of live notifiers below the root.
func (r *Router) NotifierCount() int {
	return r.root.countChildren()
}

// notifyRouteSubscribers fires external route listeners with
// copy-before-notify, so a listener may unsubscribe during delivery.
func (r *Router) notifyRouteSubscribers(rt route.Route) {
	r.subMu.RLock()
	subs := make([]func(route.Route), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subMu.RUnlock()

	for _, fn := range subs {
		fn(rt)
	}
}
