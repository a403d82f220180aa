package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathstack-dev/pathstack/pkg/route"
	"github.com/pathstack-dev/pathstack/pkg/selector"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <pathname> <rule>",
		Short: "Match a textual selector rule against a pathname",
		Long: `Match compiles a whitespace-separated rule and runs it against the
parsed pathname from the reset checkpoint. Rule tokens:

  /            root anchor
  ~            advance to the next block (the configured block separator)
  name         literal context name
  re:^us       context name pattern
  key=value    property equals value
  key=re:x     property matches pattern
  key!         property must be absent

Exits non-zero when the rule does not match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := routeConfig()
			if err != nil {
				return err
			}

			rule, err := selector.ParseRule(args[1], cfg)
			if err != nil {
				return err
			}

			stack := route.ParseStack(args[0], cfg)
			cp := selector.Select(rule, selector.Reset(), stack)
			if !cp.Matched() {
				return fmt.Errorf("no match for %q against %q", args[1], args[0])
			}

			fmt.Printf("matched at block %d, context %d\n", cp.Block, cp.Context)
			return nil
		},
	}
	return cmd
}
