package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refactor/internal/driver"
)

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List the available transforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range driver.DefaultRegistry().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
