package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refactor/internal/driver"
	"refactor/internal/treefmt"
)

var (
	runTransforms  []string
	runOutSuffix   string
	runJobs        int
	runStdout      bool
	runUI          bool
	runStdPrefixes []string
	runSourceFile  string
)

func init() {
	runCmd.Flags().StringArrayVarP(&runTransforms, "transform", "t", []string{"reorganize_namespaces"}, "transform to apply, may repeat")
	runCmd.Flags().StringVar(&runOutSuffix, "out-suffix", ".out.mp", "suffix for output snapshots")
	runCmd.Flags().IntVar(&runJobs, "jobs", 0, "number of parallel workers (0 = all CPUs)")
	runCmd.Flags().BoolVar(&runStdout, "stdout", false, "print the result instead of writing a snapshot (single file only)")
	runCmd.Flags().BoolVar(&runUI, "ui", false, "show interactive progress")
	runCmd.Flags().StringArrayVar(&runStdPrefixes, "std-prefix", nil, "header path prefix treated as standard library, may repeat")
	runCmd.Flags().StringVar(&runSourceFile, "source", "", "override the source file recorded in the snapshots")
}

var runCmd = &cobra.Command{
	Use:   "run [files or directories]",
	Short: "Apply transforms to snapshot files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		timings, _ := cmd.Flags().GetBool("timings")

		if runStdout && runUI {
			return fmt.Errorf("--stdout and --ui are mutually exclusive")
		}

		req := driver.Request{
			Inputs:        args,
			Transforms:    runTransforms,
			OutSuffix:     runOutSuffix,
			Jobs:          runJobs,
			StdPrefixes:   stdPrefixOverride(cmd),
			SourceFile:    runSourceFile,
			EnableTimings: timings,
		}

		if runStdout {
			files, err := driver.ExpandInputs(args)
			if err != nil {
				return err
			}
			if len(files) != 1 {
				return fmt.Errorf("--stdout needs exactly one snapshot file, got %d", len(files))
			}
			fr, err := driver.RunFile(cmd.Context(), files[0], req)
			if err != nil {
				return err
			}
			if fr.Err != nil {
				return fr.Err
			}
			if timings && fr.Timings != nil {
				fmt.Fprint(cmd.ErrOrStderr(), fr.Timings.Summary())
			}
			return treefmt.Pretty(cmd.OutOrStdout(), fr.Applied)
		}

		var res *driver.Result
		var err error
		if runUI && isTerminal(os.Stdout) {
			res, err = runWithUI(cmd.Context(), req)
		} else {
			res, err = driver.Run(cmd.Context(), req)
		}
		if err != nil {
			return err
		}

		for _, fr := range res.Files {
			if fr.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", fr.Path, fr.Err)
				continue
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", fr.Path, fr.OutPath)
			}
			if timings && fr.Timings != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n%s", fr.Path, fr.Timings.Summary())
			}
		}
		if failed := res.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
		}
		return nil
	},
}

// stdPrefixOverride distinguishes "flag not given" (defer to manifest)
// from an explicit empty override.
func stdPrefixOverride(cmd *cobra.Command) []string {
	if !cmd.Flags().Changed("std-prefix") {
		return nil
	}
	if runStdPrefixes == nil {
		return []string{}
	}
	return runStdPrefixes
}
