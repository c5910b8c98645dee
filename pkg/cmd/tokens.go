package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/scanner"
	"github.com/birendpatel/lemon/pkg/source"
	"github.com/birendpatel/lemon/pkg/token"
)

// tokensCmd promotes --Dtokens to a first-class subcommand: it runs only
// the scanner over a single file and prints the resulting token stream,
// one token per line, without ever invoking the parser or resolver.
var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "print the token stream produced by the scanner for a single file.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		trace := traceFromFlags(cmd)

		if err := runTokens(args[0], trace); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

// runTokens scans path to completion, printing every token it produces
// (including EOF) via token.Token.String.
func runTokens(path string, trace diag.Trace) error {
	file, err := source.ReadFile(path)
	if err != nil {
		return err
	}

	ch := scanner.NewChannel(scanner.DefaultCapacity)
	scanner.Spawn(file, ch)

	for {
		tok, ok := ch.Recv()
		if !ok {
			break
		}

		fmt.Println(tok.String())
		trace.Token(tok.String())

		if tok.Kind == token.EOF {
			break
		}
	}

	return nil
}
