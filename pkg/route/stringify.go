package route

import (
	"fmt"
	"strings"
)

// StringifyContext emits "/name" followed by "/key<sep>value" for each
// property in order. Characters that would re-tokenize on parse are
// percent-encoded.
func StringifyContext(c Context, cfg Config) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(escapeName(c.Name, cfg))
	for _, p := range c.Properties {
		b.WriteString("/")
		b.WriteString(escapeComponent(p.Key, cfg.ParamSeparator))
		b.WriteString(cfg.ParamSeparator)
		b.WriteString(escapeComponent(p.Value, ""))
	}
	return b.String()
}

// StringifyBlock joins the block's contexts; each context string already
// carries its leading "/".
func StringifyBlock(b Block, cfg Config) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteString(StringifyContext(c, cfg))
	}
	return sb.String()
}

// StringifyStack joins blocks with "/<blockSeparator>". An empty stack
// serializes to the root pathname "/".
func StringifyStack(s Stack, cfg Config) string {
	if len(s) == 0 {
		return "/"
	}
	var sb strings.Builder
	for i, b := range s {
		if i > 0 {
			sb.WriteString("/")
			sb.WriteString(cfg.BlockSeparator)
		}
		sb.WriteString(StringifyBlock(b, cfg))
	}
	return sb.String()
}

// escapeName encodes a context name. A name equal to the block separator
// is fully encoded so it cannot be re-read as a block boundary; a name
// containing the parameter separator is encoded so it cannot be re-read
// as a property line.
func escapeName(name string, cfg Config) string {
	if name == cfg.BlockSeparator {
		return escapeByte(name[0])
	}
	return escapeComponent(name, cfg.ParamSeparator)
}

// escapeComponent percent-encodes "%", "/" and every byte of extra.
// Values pass extra == "": a value may contain the parameter separator
// because property segments split once, on the first occurrence.
func escapeComponent(s, extra string) string {
	if !strings.ContainsAny(s, "%/"+extra) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '%' || ch == '/' || strings.IndexByte(extra, ch) >= 0 {
			b.WriteString(escapeByte(ch))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func escapeByte(ch byte) string {
	return fmt.Sprintf("%%%02X", ch)
}
