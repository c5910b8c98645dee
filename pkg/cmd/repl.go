package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/birendpatel/lemon/pkg/diag"
)

// shellPrefix marks a REPL line as a host-shell escape: "$cmd args..."
// runs cmd through the default shell rather than the lemon front-end,
// per spec.md §6.
const shellPrefix = "$"

// defaultShell is invoked for a bare "$" line with no command attached.
const defaultShell = "sh"

// runREPL implements spec.md §6's interactive mode: read lines until two
// consecutive blank lines end the current buffer, hand that buffer to the
// front-end, and repeat until stdin reaches EOF (Ctrl-D).
//
// A line beginning with "$" is never part of a buffer -- it either names
// a host command to run immediately ("$ls -la") or, alone, starts the
// user's default shell.
func runREPL(trace diag.Trace) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	blanks := 0
	bufferNum := 0

	prompt := func() {
		if interactive {
			if buf.Len() == 0 {
				fmt.Print("lemon> ")
			} else {
				fmt.Print("....... ")
			}
		}
	}

	prompt()

	for scanner.Scan() {
		line := scanner.Text()

		if buf.Len() == 0 && strings.HasPrefix(line, shellPrefix) {
			runShellLine(strings.TrimPrefix(line, shellPrefix))
			prompt()

			continue
		}

		if strings.TrimSpace(line) == "" {
			blanks++
		} else {
			blanks = 0
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if blanks >= 2 {
			flushREPLBuffer(&buf, &bufferNum, trace)
			blanks = 0
		}

		prompt()
	}

	if buf.Len() > 0 {
		flushREPLBuffer(&buf, &bufferNum, trace)
	}

	if interactive {
		fmt.Println()
	}
}

// flushREPLBuffer resolves the accumulated buffer as one in-memory module
// and resets buf for the next one.
func flushREPLBuffer(buf *strings.Builder, bufferNum *int, trace diag.Trace) {
	*bufferNum++
	name := fmt.Sprintf("<repl:%d>", *bufferNum)

	resolveBuffer(name, []byte(buf.String()), trace)
	buf.Reset()
}

// runShellLine runs command (trimmed) through "defaultShell -c", or starts
// defaultShell itself when command is empty, wiring stdin/stdout/stderr
// straight through to the terminal.
func runShellLine(command string) {
	command = strings.TrimSpace(command)

	var c *exec.Cmd
	if command == "" {
		c = exec.Command(defaultShell)
	} else {
		c = exec.Command(defaultShell, "-c", command)
	}

	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
