package route

import (
	"fmt"
	"strings"
)

// Default separator characters.
const (
	DefaultBlockSeparator = "~"
	DefaultParamSeparator = "="
)

// blockSeparatorSafe is the set of characters a block separator may use.
// These survive URL encoding untouched in every browser.
const blockSeparatorSafe = "-_'.!~*"

// paramSeparatorReserved is the set of characters a parameter separator
// must not use. They carry meaning elsewhere in a URL; '#' is included
// because the fragment marker would split the pathname before the parser
// ever saw the separator.
const paramSeparatorReserved = ";/?:@&+$#"

// Config holds the two separator characters the parser is built around.
// The zero value is not valid; use DefaultConfig or NewConfig.
type Config struct {
	// BlockSeparator is the segment that opens a new block (default "~").
	BlockSeparator string

	// ParamSeparator splits a property segment into key and value (default "=").
	ParamSeparator string
}

// ConfigError reports an invalid separator configuration.
// No partial configuration is ever produced alongside one.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("route: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Option overrides a single Config field.
type Option func(*Config)

// WithBlockSeparator overrides the block separator.
func WithBlockSeparator(s string) Option {
	return func(c *Config) {
		c.BlockSeparator = s
	}
}

// WithParamSeparator overrides the parameter separator.
func WithParamSeparator(s string) Option {
	return func(c *Config) {
		c.ParamSeparator = s
	}
}

// DefaultConfig returns the default "~" / "=" configuration.
func DefaultConfig() Config {
	return Config{
		BlockSeparator: DefaultBlockSeparator,
		ParamSeparator: DefaultParamSeparator,
	}
}

// NewConfig builds a validated configuration, filling unset fields with
// defaults. It fails with a *ConfigError when the block separator is not
// exactly one character from the safe set, or the parameter separator is
// not exactly one character or is a reserved character.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the separator characters.
func (c Config) Validate() error {
	if len(c.BlockSeparator) != 1 {
		return &ConfigError{
			Field:  "block separator",
			Value:  c.BlockSeparator,
			Reason: "must be exactly one character",
		}
	}
	if !strings.Contains(blockSeparatorSafe, c.BlockSeparator) {
		return &ConfigError{
			Field:  "block separator",
			Value:  c.BlockSeparator,
			Reason: fmt.Sprintf("must be one of %q", blockSeparatorSafe),
		}
	}
	if len(c.ParamSeparator) != 1 {
		return &ConfigError{
			Field:  "param separator",
			Value:  c.ParamSeparator,
			Reason: "must be exactly one character",
		}
	}
	if strings.Contains(paramSeparatorReserved, c.ParamSeparator) {
		return &ConfigError{
			Field:  "param separator",
			Value:  c.ParamSeparator,
			Reason: fmt.Sprintf("must not be one of %q", paramSeparatorReserved),
		}
	}
	return nil
}
