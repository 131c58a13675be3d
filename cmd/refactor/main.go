package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"refactor/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "refactor",
	Short: "Post-translation refactoring toolchain",
	Long:  `refactor applies structural transforms to translated crate snapshots`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("color")
		switch mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			color.NoColor = !isTerminal(os.Stdout)
		default:
			return fmt.Errorf("unsupported --color value %q (must be auto, on or off)", mode)
		}
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(transformsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
