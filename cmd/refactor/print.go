package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"refactor/internal/snapshot"
	"refactor/internal/treefmt"
)

var printFormat string

func init() {
	printCmd.Flags().StringVar(&printFormat, "format", "pretty", "output format (pretty|tree|json)")
}

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Render a snapshot without transforming it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch strings.ToLower(printFormat) {
		case "pretty":
			return treefmt.Pretty(out, snap.Crate)
		case "tree":
			return treefmt.Tree(out, snap.Crate)
		case "json":
			return treefmt.JSON(out, snap.Crate)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, tree or json)", printFormat)
		}
	},
}
