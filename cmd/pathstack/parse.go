package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pathstack-dev/pathstack/pkg/route"
)

func parseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <pathname>",
		Short: "Parse a pathname into its block/context structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := routeConfig()
			if err != nil {
				return err
			}

			stack := route.ParseStack(args[0], cfg)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stack)
			}

			printStack(stack, cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the stack as JSON")
	return cmd
}

// printStack renders the stack as a table, one row per context.
func printStack(stack route.Stack, cfg route.Config) {
	if len(stack) == 0 {
		fmt.Println("(empty stack)")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Block", "Context", "Name", "Properties"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for bi, block := range stack {
		for ci, ctx := range block {
			var props []string
			for _, p := range ctx.Properties {
				props = append(props, fmt.Sprintf("%s%s%s", p.Key, cfg.ParamSeparator, p.Value))
			}
			table.Append([]string{
				fmt.Sprintf("%d", bi),
				fmt.Sprintf("%d", ci),
				ctx.Name,
				strings.Join(props, "  "),
			})
		}
	}
	table.Render()

	fmt.Printf("\nserialized: %s\n", route.StringifyStack(stack, cfg))
}
