package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nishad/dsquery/internal/config"
	"github.com/nishad/dsquery/internal/dataset"
	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cli holds the flag values and streams of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	format     string
	configPath string
	noColor    bool
	debug      bool

	cfg *config.Config
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dsquery [flags] QUERY [ARGUMENT] DATASET_FILE",
		Short: "Query groups and samples in a dataset description",
		Long: `dsquery answers membership and attribute lookups over a dataset
description document: groups (or patients) that contain samples, each sample
with an optional directory.

The dataset may be a local file or a gs://bucket/object path, plain or
compressed with gzip, bzip2, zlib, xz or zip.`,
		Example: `  dsquery groups dataset.xml
  dsquery samples G1 dataset.xml
  dsquery sampledir S2 dataset.xml
  dsquery -f json siblings S1 dataset.xml.gz
  dsquery serve dataset.xml --port 9000`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
		RunE:              c.runUnknown,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.CompletionOptions.DisableDefaultCmd = true
	// "help" is an unknown query, not a command.
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return dserrors.E(dserrors.Op("cli.flags"), dserrors.KindUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&c.format, "format", "f", "", "Output format (plain, json, yaml, csv, tsv, table)")
	pf.StringVar(&c.configPath, "config", "", "Path to a YAML config file")
	pf.BoolVar(&c.noColor, "no-color", false, "Disable colored diagnostics")
	pf.BoolVar(&c.debug, "debug", false, "Print debug information to stderr")

	for _, spec := range query.Specs {
		root.AddCommand(c.newQueryCmd(spec))
	}
	root.AddCommand(c.newServeCmd())

	return root
}

// loadConfig runs before every command.
func (c *cli) loadConfig(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.printDebug("config: %s", path)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		c.printDebug("flag --%s=%s", f.Name, f.Value)
	})

	if c.format != "" && !config.IsFormat(c.format) {
		return dserrors.Usagef("cli.flags", "unknown output format %q", c.format)
	}
	return nil
}

// runUnknown handles positionals that did not name a query.
func (c *cli) runUnknown(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return dserrors.Usagef("cli", "expected QUERY [ARGUMENT] DATASET_FILE")
	}

	// The dataset is read before the query name is checked.
	if _, err := c.loadDataset(cmd.Context(), args[len(args)-1]); err != nil {
		return err
	}
	return dserrors.Usagef("cli", "unknown query %q", args[0])
}

func (c *cli) loadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	opts := dataset.Options{
		GroupTags: c.cfg.Dataset.GroupTags,
		SampleTag: c.cfg.Dataset.SampleTag,
		Verbose:   c.debug,
	}
	return dataset.Load(ctx, path, opts)
}

func (c *cli) outputFormat() string {
	if c.format != "" {
		return c.format
	}
	return c.cfg.Output.Format
}

// endFlagsAfterQuery inserts "--" after the query name so that arguments
// starting with a dash are read as ids and paths. Flags are accepted only
// before the query; serve keeps its own flags.
func endFlagsAfterQuery(args []string, flags *pflag.FlagSet) []string {
	i := firstPositional(args, flags)
	if i < 0 || args[i] == "serve" {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:i+1]...)
	out = append(out, "--")
	return append(out, args[i+1:]...)
}

// firstPositional returns the index of the first argument that is neither a
// flag nor a flag value, or -1.
func firstPositional(args []string, flags *pflag.FlagSet) int {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return -1
		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if strings.Contains(name, "=") {
				continue
			}
			if f := flags.Lookup(name); f != nil && f.NoOptDefVal == "" {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			if len(arg) == 2 {
				if f := flags.ShorthandLookup(arg[1:]); f != nil && f.NoOptDefVal == "" {
					i++
				}
			}
		default:
			return i
		}
	}
	return -1
}
