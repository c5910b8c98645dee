// Package cmd implements the lemon CLI surface of spec.md §6, grounded on
// the teacher's pkg/cmd tree: a package-level cobra.Command root, one
// file per subcommand, and a shared GetFlag/GetString helper file.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/birendpatel/lemon/pkg/diag"
)

// Version is filled in when building with make, matching the teacher's
// root.go convention; it is left empty under "go run"/"go test".
var Version string

// rootCmd is lemon's bare invocation: "compiler [flags] <file1> [<file2>
// ...]" per spec.md §6. With no file arguments it enters the REPL; with
// one or more it runs the same pipeline as the "build" subcommand, then
// (with -i) falls through into the REPL anyway.
var rootCmd = &cobra.Command{
	Use:   "lemon [flags] [file...]",
	Short: "A front-end compiler for the lemon language.",
	Long: `lemon scans, parses, and resolves module dependencies and symbols
for the lemon language. With no file arguments it starts an interactive
REPL; given one or more files it compiles each as an independent root
module.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Println(Version)
			return
		}

		trace := traceFromFlags(cmd)
		trace.Option("files", args)
		colorEnabled = GetFlag(cmd, "color")

		code := 0

		if len(args) > 0 {
			code = runBuild(args, trace)
		}

		if len(args) == 0 || GetFlag(cmd, "i") {
			runREPL(trace)
		}

		os.Exit(code)
	},
}

// Execute adds all child commands to rootCmd and runs it. Called once
// from cmd/lemon/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")

	// --D* internal trace flags, per spec.md §6.
	rootCmd.PersistentFlags().Bool("Dopt", false, "print options state before compiling")
	rootCmd.PersistentFlags().Bool("Dpass", false, "announce entry/exit of each compiler pass")
	rootCmd.PersistentFlags().Bool("Dtokens", false, "print every token produced by the scanner")
	rootCmd.PersistentFlags().Bool("Dthread", false, "announce thread creation and join")
	rootCmd.PersistentFlags().Bool("Dall", false, "enable all --D* diagnostics")

	// IR/VM flags. This front-end has no IR backend or VM, so both are
	// accepted and recorded but never change compilation behavior --
	// matching spec.md §6's "-S, --Iasm: disassemble generated IR (no-op
	// in this core)".
	rootCmd.PersistentFlags().BoolP("Iasm", "S", false, "disassemble generated IR (no-op in this core)")
	rootCmd.PersistentFlags().BoolP("Mkill", "k", false, "skip VM execution (no-op in this core)")

	rootCmd.PersistentFlags().BoolP("i", "i", false, "drop into the REPL after compiling the given files")

	rootCmd.PersistentFlags().Bool("color", true, "colorize diagnostics")
}

// traceFromFlags builds a diag.Trace from the --D* flags bound to cmd.
func traceFromFlags(cmd *cobra.Command) diag.Trace {
	trace := diag.All()

	if !GetFlag(cmd, "Dall") {
		trace = diag.Trace{
			Opt:    GetFlag(cmd, "Dopt"),
			Pass:   GetFlag(cmd, "Dpass"),
			Tokens: GetFlag(cmd, "Dtokens"),
			Thread: GetFlag(cmd, "Dthread"),
		}
	}

	// Trace messages are logged at debug level, which logrus drops by default.
	if trace.Opt || trace.Pass || trace.Tokens || trace.Thread {
		log.SetLevel(log.DebugLevel)
	}

	return trace
}
