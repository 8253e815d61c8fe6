package main

import (
	"fmt"
	"io"
	"os"

	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/query"
	"github.com/nishad/dsquery/internal/ui"
)

// Color codes for terminal output
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

const programName = "dsquery"

// Apply color if terminal output and color enabled
func (c *cli) colorize(w io.Writer, color, text string) string {
	if c.colorEnabled() && ui.IsTerminal(w) && os.Getenv("NO_COLOR") == "" {
		return color + text + colorReset
	}
	return text
}

func (c *cli) colorEnabled() bool {
	if c.noColor {
		return false
	}
	return c.cfg == nil || c.cfg.Output.Color
}

// Print error message in user-friendly format
func (c *cli) printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.stderr, "%s %s\n", c.colorize(c.stderr, colorRed, "✗"), msg)
}

// Print success message
func (c *cli) printSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.stderr, "%s %s\n", c.colorize(c.stderr, colorGreen, "✓"), msg)
}

// Print info message
func (c *cli) printInfo(format string, args ...interface{}) {
	fmt.Fprintf(c.stderr, format+"\n", args...)
}

// Print debug message
func (c *cli) printDebug(format string, args ...interface{}) {
	if c.debug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.stderr, "%s %s\n", c.colorize(c.stderr, colorGray, "[DEBUG]"), msg)
	}
}

// printUsage writes the query table to stdout.
func (c *cli) printUsage() {
	fmt.Fprint(c.stdout, query.Usage(programName))
}

// handleError reports err and maps it to an exit status.
func (c *cli) handleError(err error) int {
	if err == nil {
		return dserrors.ExitOK
	}

	switch dserrors.GetKind(err) {
	case dserrors.KindUsage:
		c.printError("%s", messageOf(err))
		c.printUsage()
	case dserrors.KindMissingArgument:
		fmt.Fprintln(c.stderr, messageOf(err))
	default:
		c.printError("%v", err)
	}
	return dserrors.ExitCode(err)
}

// messageOf returns the innermost message of an application error, without
// the operation prefixes.
func messageOf(err error) string {
	if e, ok := err.(*dserrors.Error); ok {
		if e.Msg != "" {
			return e.Msg
		}
		if e.Err != nil {
			return messageOf(e.Err)
		}
	}
	return err.Error()
}
