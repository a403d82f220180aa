// Package bridge exposes a router to an external rendering layer over
// HTTP and WebSocket. Clients read the current route, issue navigation
// commands, and receive a route snapshot push on every change. The
// bridge is a transport, not a rendering layer; it holds no UI state.
package bridge
