package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildCmd runs the full pipeline explicitly, as an alternative to
// passing files directly to the root command.
var buildCmd = &cobra.Command{
	Use:   "build <file...>",
	Short: "compile one or more lemon files and report diagnostics.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		trace := traceFromFlags(cmd)
		trace.Option("files", args)
		colorEnabled = GetFlag(cmd, "color")

		os.Exit(runBuild(args, trace))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
