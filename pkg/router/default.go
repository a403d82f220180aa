package router

import (
	"errors"
	"sync"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

// ErrAlreadyInitialized is returned when Init runs a second time with a
// different separator configuration. Re-initializing with the same
// configuration is idempotent and returns the existing instance, which
// keeps hot-reload setups working; a changed configuration cannot be
// honored silently because it would reparse every later pathname
// differently.
var ErrAlreadyInitialized = errors.New("router: default router already initialized with a different configuration")

var (
	defaultMu     sync.Mutex
	defaultRouter *Router
)

// Init installs the process-wide default router. The first call
// constructs it; later calls return the existing instance when the
// configuration matches and ErrAlreadyInitialized when it does not.
func Init(history History, opts ...Option) (*Router, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRouter != nil {
		// Apply the options to a probe to see the configuration they
		// would produce, without constructing a second router.
		probe := &Router{cfg: route.DefaultConfig()}
		for _, opt := range opts {
			opt(probe)
		}
		if probe.cfg != defaultRouter.cfg {
			return nil, ErrAlreadyInitialized
		}
		return defaultRouter, nil
	}

	defaultRouter = New(history, opts...)
	return defaultRouter, nil
}

// Default returns the installed default router, nil before Init.
func Default() *Router {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRouter
}

// Teardown removes the default router so a later Init constructs a
// fresh one. Live notifiers built on the old instance keep working
// against it.
func Teardown() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRouter = nil
}
