package router

// Middleware processes navigations around the route rebuild and cascade.
// Return an error to stop the chain and fail the navigation; return nil
// without calling next to swallow the navigation entirely.
type Middleware interface {
	Handle(nav *Navigation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(nav *Navigation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(nav *Navigation, next func() error) error {
	return f(nav, next)
}
