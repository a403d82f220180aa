package route

import (
	"net/url"
	"strings"
)

// ParseStack splits pathname on "/" and classifies the segments into a
// Stack. Empty segments (leading, trailing, duplicate slashes) are
// dropped. A segment equal to the block separator closes the current
// block; the next content segment opens a new one, so trailing or
// repeated separators never produce an empty block. The first segment of
// every block is forced to be a context name regardless of content; after
// that, a segment containing the parameter separator is a property line
// of the current context and any other segment opens a new context.
func ParseStack(pathname string, cfg Config) Stack {
	var stack Stack

	// blockOpen is false whenever the next content segment must open a
	// block and name its first context.
	blockOpen := false

	for _, seg := range strings.Split(pathname, "/") {
		if seg == "" {
			continue
		}
		if blockOpen && seg == cfg.BlockSeparator {
			blockOpen = false
			continue
		}
		if !blockOpen {
			stack = append(stack, Block{{Name: decodeComponent(seg)}})
			blockOpen = true
			continue
		}

		block := &stack[len(stack)-1]
		if i := strings.Index(seg, cfg.ParamSeparator); i >= 0 {
			key := decodeComponent(seg[:i])
			value := decodeComponent(seg[i+len(cfg.ParamSeparator):])
			ctx := &(*block)[len(*block)-1]
			ctx.addProperty(key, value)
			continue
		}
		*block = append(*block, Context{Name: decodeComponent(seg)})
	}

	return stack
}

// ParseSearch parses a query string into a map, stripping a leading "?".
// Parts split on the first "="; a part without "=" maps the whole part to
// the empty value. Repeated keys join with a single space in encounter
// order, the same accumulation rule context properties use.
func ParseSearch(search string) map[string]string {
	search = strings.TrimPrefix(search, "?")
	if search == "" {
		return nil
	}

	var out map[string]string
	for _, part := range strings.Split(search, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		k := decodeQuery(key)
		v := decodeQuery(value)
		if out == nil {
			out = make(map[string]string)
		}
		if prev, ok := out[k]; ok {
			out[k] = prev + " " + v
		} else {
			out[k] = v
		}
	}
	return out
}

// ParseHash strips the leading "#" from a fragment. No further decoding
// beyond what the platform already applied.
func ParseHash(hash string) string {
	return strings.TrimPrefix(hash, "#")
}

// decodeComponent percent-decodes one name/key/value component. An
// undecodable sequence passes through verbatim; parsing has no error
// outcome.
func decodeComponent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// decodeQuery decodes one query key or value, tolerating malformed input
// the same way decodeComponent does.
func decodeQuery(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
