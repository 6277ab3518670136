package cli

import (
	"fmt"

	"github.com/flowbaker/copysmith/pkg/language"
	"github.com/spf13/cobra"
)

func NewLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the accepted language selectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, selector := range language.SelectorNames {
				code, ok := language.Selectors[selector]
				if !ok {
					fmt.Fprintf(out, "%-14s detected from the product name\n", selector)
					continue
				}
				fmt.Fprintf(out, "%-14s %-6s %s\n", selector, code, code.FullName())
			}

			return nil
		},
	}
}
