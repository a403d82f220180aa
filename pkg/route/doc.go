// Package route turns a location's pathname into a structured model and back.
//
// A pathname decomposes into three levels: a Stack of Blocks, each Block an
// ordered run of Contexts, each Context a name plus key/value properties.
// Segments equal to the configured block separator open a new block; within
// a block, a segment containing the parameter separator is a property line
// of the current context, and any other segment names a new context. The
// first segment of every block always names a context, whatever it contains.
//
// Parsing never fails: every pathname has a well-defined Stack. The only
// errors this package produces are configuration errors for invalid
// separator characters.
//
// Stringify* is the exact inverse of parsing. For any Stack s produced by
// ParseStack, ParseStack(StringifyStack(s)) reproduces an equal Stack.
package route
