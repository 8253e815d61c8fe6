package main

import (
	"context"
	"io"
	"log"
	"os"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	c := newCLI(stdout, stderr)
	root := c.newRootCmd()
	root.SetArgs(endFlagsAfterQuery(args, root.PersistentFlags()))

	err := root.ExecuteContext(context.Background())
	return c.handleError(err)
}
