// Package output renders query results in the formats the CLI offers.
package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/query"
)

// Write renders entries to w in the given format.
func Write(w io.Writer, format string, entries []query.Entry) error {
	const op dserrors.Op = "output.write"

	if entries == nil {
		entries = []query.Entry{}
	}

	var err error
	switch format {
	case "", "plain":
		err = writePlain(w, entries)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(entries)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err = encoder.Encode(entries); err == nil {
			err = encoder.Close()
		}
	case "csv":
		err = writeDelimited(w, entries, ',')
	case "tsv":
		err = writeDelimited(w, entries, '\t')
	case "table":
		writeTable(w, entries)
	default:
		return dserrors.E(op, dserrors.KindUsage,
			fmt.Sprintf("invalid format: %s (valid values: plain, json, yaml, csv, tsv, table)", format))
	}
	return dserrors.Wrap(op, err)
}

// writePlain prints one value per line.
func writePlain(w io.Writer, entries []query.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeDelimited(w io.Writer, entries []query.Entry, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return gocsv.MarshalCSV(entries, gocsv.NewSafeCSVWriter(cw))
}

func writeTable(w io.Writer, entries []query.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Group", "Sample", "Dir", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.GroupID, e.SampleID, e.Dir, e.Value})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(entries)})

	t.Render()
}
