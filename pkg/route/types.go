package route

// Property is one key/value entry of a context. Keys are unique within a
// context after merging; values for a repeated key are joined with a
// single space in encounter order.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Context is a named leaf unit of the route model: the first segment of
// its run names it, every following property segment accumulates into
// Properties.
type Context struct {
	Name       string     `json:"name"`
	Properties []Property `json:"properties,omitempty"`
}

// Property returns the merged value for key and whether the key exists.
func (c *Context) Property(key string) (string, bool) {
	for _, p := range c.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// addProperty merges a key/value pair into the context, joining repeated
// keys with a single space and preserving encounter order.
func (c *Context) addProperty(key, value string) {
	for i := range c.Properties {
		if c.Properties[i].Key == key {
			c.Properties[i].Value += " " + value
			return
		}
	}
	c.Properties = append(c.Properties, Property{Key: key, Value: value})
}

// Equal reports structural equality.
func (c Context) Equal(other Context) bool {
	if c.Name != other.Name || len(c.Properties) != len(other.Properties) {
		return false
	}
	for i, p := range c.Properties {
		if other.Properties[i] != p {
			return false
		}
	}
	return true
}

// Block is an ordered, non-empty sequence of contexts. The parser never
// produces an empty block: a block only opens at its first context.
type Block []Context

// Equal reports structural equality.
func (b Block) Equal(other Block) bool {
	if len(b) != len(other) {
		return false
	}
	for i, c := range b {
		if !c.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Stack is the whole pathname: an ordered sequence of blocks, empty when
// the pathname has no non-empty segments. Treat it as immutable once
// constructed.
type Stack []Block

// Equal reports structural equality.
func (s Stack) Equal(other Stack) bool {
	if len(s) != len(other) {
		return false
	}
	for i, b := range s {
		if !b.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Route is an immutable snapshot of a location: the parsed stack plus
// search params and fragment. A Route is superseded on navigation, never
// mutated.
type Route struct {
	Stack  Stack             `json:"stack"`
	Search map[string]string `json:"search,omitempty"`
	Hash   string            `json:"hash,omitempty"`
	Config Config            `json:"-"`
}

// NewRoute parses a pathname/search/hash triple into a Route.
func NewRoute(pathname, search, hash string, cfg Config) Route {
	return Route{
		Stack:  ParseStack(pathname, cfg),
		Search: ParseSearch(search),
		Hash:   ParseHash(hash),
		Config: cfg,
	}
}

// Path re-serializes the route's stack to a pathname.
func (r Route) Path() string {
	return StringifyStack(r.Stack, r.Config)
}

// Equal reports structural equality of stack, search and hash.
func (r Route) Equal(other Route) bool {
	if !r.Stack.Equal(other.Stack) || r.Hash != other.Hash {
		return false
	}
	if len(r.Search) != len(other.Search) {
		return false
	}
	for k, v := range r.Search {
		if other.Search[k] != v {
			return false
		}
	}
	return true
}
