package bridge

import "github.com/pathstack-dev/pathstack/pkg/route"

// Command types accepted over the WebSocket.
const (
	CommandNavigate = "navigate"
	CommandBack     = "back"
	CommandForward  = "forward"
)

// Message types pushed to clients.
const (
	MessageRoute = "route"
	MessageError = "error"
)

// Command is one inbound client message.
type Command struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// ContextSnapshot is the wire form of one context. Properties carry
// their merged, space-joined values.
type ContextSnapshot struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
}

// RouteSnapshot is the wire form of a route, pushed on every change.
type RouteSnapshot struct {
	Type   string              `json:"type"`
	Path   string              `json:"path"`
	Blocks [][]ContextSnapshot `json:"blocks"`
	Search map[string]string   `json:"search,omitempty"`
	Hash   string              `json:"hash,omitempty"`
}

// ErrorMessage reports a rejected command.
type ErrorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// snapshotRoute converts a route into its wire form.
func snapshotRoute(rt route.Route) RouteSnapshot {
	blocks := make([][]ContextSnapshot, len(rt.Stack))
	for i, block := range rt.Stack {
		contexts := make([]ContextSnapshot, len(block))
		for j, ctx := range block {
			var props map[string]string
			if len(ctx.Properties) > 0 {
				props = make(map[string]string, len(ctx.Properties))
				for _, p := range ctx.Properties {
					props[p.Key] = p.Value
				}
			}
			contexts[j] = ContextSnapshot{Name: ctx.Name, Properties: props}
		}
		blocks[i] = contexts
	}
	return RouteSnapshot{
		Type:   MessageRoute,
		Path:   rt.Path(),
		Blocks: blocks,
		Search: rt.Search,
		Hash:   rt.Hash,
	}
}
