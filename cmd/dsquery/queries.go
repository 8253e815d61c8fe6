package main

import (
	"strings"

	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/output"
	"github.com/nishad/dsquery/internal/query"
	"github.com/spf13/cobra"
)

// newQueryCmd builds the subcommand for one query. Synonyms are registered
// as aliases; the name actually typed is used in error messages.
func (c *cli) newQueryCmd(spec query.Spec) *cobra.Command {
	use := string(spec.Name)
	switch {
	case spec.Required:
		use += " " + argPlaceholder(spec.Arg)
	case spec.Arg != "":
		use += " [" + argPlaceholder(spec.Arg) + "]"
	}
	use += " DATASET_FILE"

	return &cobra.Command{
		Use:     use,
		Aliases: spec.Aliases,
		Short:   spec.Result,
		Args:    positionalArgs(1, 2),
		RunE:    c.runQuery,
	}
}

func (c *cli) runQuery(cmd *cobra.Command, args []string) error {
	name := cmd.CalledAs()
	path := args[len(args)-1]
	var arg string
	if len(args) == 2 {
		arg = args[0]
	}

	ds, err := c.loadDataset(cmd.Context(), path)
	if err != nil {
		return err
	}

	entries, err := query.NewEngine(ds).Run(name, arg)
	if err != nil {
		return err
	}
	c.printDebug("%s %q: %d results", name, arg, len(entries))

	return output.Write(c.stdout, c.outputFormat(), entries)
}

// positionalArgs reports a count outside [min,max] as a usage error.
func positionalArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return dserrors.E(dserrors.Op("cli.args"), dserrors.KindUsage, err)
		}
		return nil
	}
}

func argPlaceholder(desc string) string {
	return strings.ToUpper(strings.ReplaceAll(desc, " ", "_"))
}

