// Package query answers membership and attribute lookups over a loaded
// dataset. Every query re-scans the tree; nothing is cached or indexed.
package query

import (
	"fmt"
	"strings"

	"github.com/nishad/dsquery/internal/dataset"
	dserrors "github.com/nishad/dsquery/internal/errors"
)

// Name is a canonical query name.
type Name string

const (
	Groups     Name = "groups"
	Group      Name = "group"
	Samples    Name = "samples"
	SampleDirs Name = "sampledirs"
	SampleDir  Name = "sampledir"
	Siblings   Name = "siblings"
)

// Spec describes a query for dispatch and usage text.
type Spec struct {
	Name     Name
	Aliases  []string
	Arg      string // argument description, empty when the query takes none
	Required bool
	Result   string
}

// Specs lists every query in usage order.
var Specs = []Spec{
	{Name: Groups, Aliases: []string{"patients"}, Result: "Prints group IDs."},
	{Name: Group, Aliases: []string{"patient"}, Arg: "sample ID", Required: true,
		Result: "Prints group ID for the given sample."},
	{Name: Samples, Arg: "group ID", Result: "Prints sample IDs (can filter by a given group)."},
	{Name: SampleDirs, Arg: "group ID", Result: "Prints sample dirs, or IDs where no dir is defined."},
	{Name: SampleDir, Arg: "sample ID", Required: true, Result: "Prints sample directory of the given sample."},
	{Name: Siblings, Arg: "sample ID", Required: true, Result: "Prints sample IDs for the group of the given sample."},
}

// Lookup resolves a query name or synonym. Matching is exact and case-sensitive.
func Lookup(name string) (Spec, bool) {
	for _, s := range Specs {
		if string(s.Name) == name {
			return s, true
		}
		for _, alias := range s.Aliases {
			if alias == name {
				return s, true
			}
		}
	}
	return Spec{}, false
}

// Entry is one result line. Value is what plain output prints.
type Entry struct {
	Query    string `json:"query" yaml:"query" csv:"query"`
	GroupID  string `json:"group_id,omitempty" yaml:"group_id,omitempty" csv:"group_id"`
	SampleID string `json:"sample_id,omitempty" yaml:"sample_id,omitempty" csv:"sample_id"`
	Dir      string `json:"dir,omitempty" yaml:"dir,omitempty" csv:"dir"`
	Value    string `json:"value" yaml:"value" csv:"value"`
}

// Engine runs queries against one dataset.
type Engine struct {
	ds *dataset.Dataset
}

// NewEngine creates an engine over ds.
func NewEngine(ds *dataset.Dataset) *Engine {
	return &Engine{ds: ds}
}

// Dataset returns the dataset the engine queries.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// Run dispatches name with an optional argument. An empty argument counts as
// omitted. Lookup misses return an empty result, not an error.
func (e *Engine) Run(name, arg string) ([]Entry, error) {
	const op dserrors.Op = "query.run"

	spec, ok := Lookup(name)
	if !ok {
		return nil, dserrors.Usagef(op, "unknown query %q", name)
	}
	if spec.Required && arg == "" {
		return nil, MissingArgument(name, spec)
	}

	switch spec.Name {
	case Groups:
		return e.groups(), nil
	case Group:
		return e.groupOf(arg), nil
	case Samples:
		return e.samples(arg, Samples), nil
	case SampleDirs:
		return e.samples(arg, SampleDirs), nil
	case SampleDir:
		return e.sampleDir(arg), nil
	case Siblings:
		return e.siblings(arg), nil
	}
	return nil, dserrors.Usagef(op, "unknown query %q", name)
}

// MissingArgument builds the error reported when a required argument is absent.
func MissingArgument(name string, spec Spec) error {
	return dserrors.E(dserrors.Op("query."+string(spec.Name)), dserrors.KindMissingArgument,
		fmt.Sprintf("ERROR - %q query requires %s argument", name, spec.Arg))
}

func (e *Engine) groups() []Entry {
	var out []Entry
	for _, g := range e.ds.AllGroups() {
		out = append(out, Entry{Query: string(Groups), GroupID: g.ID, Value: g.ID})
	}
	return out
}

func (e *Engine) groupOf(sampleID string) []Entry {
	g, ok := e.ds.OwningGroup(sampleID)
	if !ok {
		return nil
	}
	return []Entry{{Query: string(Group), GroupID: g.ID, SampleID: sampleID, Value: g.ID}}
}

// samples selects one group's samples, or all of them when groupID is empty.
func (e *Engine) samples(groupID string, name Name) []Entry {
	var selected []dataset.Sample
	if groupID == "" {
		selected = e.ds.AllSamples()
	} else if g, ok := e.ds.GroupByID(groupID); ok {
		selected = g.Samples
	}

	out := make([]Entry, 0, len(selected))
	for _, s := range selected {
		out = append(out, sampleEntry(name, s))
	}
	return out
}

func (e *Engine) sampleDir(sampleID string) []Entry {
	s, ok := e.ds.SampleByID(sampleID)
	if !ok {
		return nil
	}
	return []Entry{sampleEntry(SampleDir, *s)}
}

// siblings lists the owning group's samples by re-resolving the group id,
// so duplicate group ids behave exactly like "samples <id>".
func (e *Engine) siblings(sampleID string) []Entry {
	g, ok := e.ds.OwningGroup(sampleID)
	if !ok {
		return nil
	}
	if g.ID == "" {
		// An empty id would select every sample.
		out := make([]Entry, 0, len(g.Samples))
		for _, s := range g.Samples {
			out = append(out, sampleEntry(Siblings, s))
		}
		return out
	}
	return e.samples(g.ID, Siblings)
}

func sampleEntry(name Name, s dataset.Sample) Entry {
	value := s.ID
	if name == SampleDirs || name == SampleDir {
		value = s.DirOrID()
	}
	return Entry{Query: string(name), GroupID: s.GroupID, SampleID: s.ID, Dir: s.Dir, Value: value}
}

// Values returns the plain output lines of entries.
func Values(entries []Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Value)
	}
	return lines
}

// Usage renders the usage table printed on argument errors.
func Usage(prog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nUsage:\n%s QUERY [ARGUMENT] DATASET.xml\n\n", prog)
	fmt.Fprintf(&b, "%-12s%-14s%s\n", "QUERY", "ARGUMENT", "RESULT")
	for _, s := range Specs {
		arg := "none"
		switch {
		case s.Arg != "" && s.Required:
			arg = s.Arg
		case s.Arg != "":
			arg = "[" + s.Arg + "]"
		}
		fmt.Fprintf(&b, "%-12s%-14s%s\n", s.Name, arg, s.Result)
	}
	b.WriteString("\nSynonyms: patients = groups, patient = group.\n")
	return b.String()
}
