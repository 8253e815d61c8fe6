package dataset

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/source"
)

// Options controls which elements the loader treats as groups and samples.
type Options struct {
	GroupTags []string // synonyms for a group element, e.g. group and patient
	SampleTag string
	Verbose   bool // log load statistics
}

// DefaultOptions accepts both group and patient elements.
func DefaultOptions() Options {
	return Options{
		GroupTags: []string{"group", "patient"},
		SampleTag: "sample",
	}
}

func (o Options) isGroup(name string) bool {
	for _, tag := range o.GroupTags {
		if tag == name {
			return true
		}
	}
	return false
}

// Load reads and parses the dataset document at path. Local files and
// gs:// objects are accepted, optionally compressed.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	const op dserrors.Op = "dataset.load"
	start := time.Now()

	rc, err := source.Open(ctx, path)
	if err != nil {
		return nil, dserrors.Wrap(op, err)
	}
	defer func() {
		dserrors.IgnoreError(rc.Close(), "closing dataset source")
	}()

	ds, err := Parse(rc, opts)
	if err != nil {
		return nil, dserrors.WrapMsg(op, path, err)
	}
	ds.Source = path

	if opts.Verbose {
		log.Printf("[LOADER] %s: %d groups, %d samples in %v",
			path, len(ds.Groups), ds.SampleCount(), time.Since(start))
	}
	return ds, nil
}

// frame is one open element on the parse stack; group is the index into
// Dataset.Groups when the element is a group, -1 otherwise.
type frame struct {
	group int
}

// Parse builds a Dataset from an XML document. Group elements are matched at
// any depth below the document element, which is never a group itself;
// samples are taken only from the direct children of a group.
// Elements and attributes the loader does not know are ignored.
func Parse(r io.Reader, opts Options) (*Dataset, error) {
	const op dserrors.Op = "dataset.parse"

	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	ds := &Dataset{}
	missing := dserrors.NewSkipCounter("reading dataset ids")

	var stack []frame
	sawRoot := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dserrors.E(op, dserrors.KindParse, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) == 0 && sawRoot {
				line, _ := decoder.InputPos()
				return nil, dserrors.E(op, dserrors.KindParse,
					fmt.Sprintf("line %d: junk after document element", line))
			}
			sawRoot = true

			id, dir := attrs(t)
			name := t.Name.Local

			switch {
			case opts.isGroup(name) && len(stack) > 0:
				if id == "" {
					line, _ := decoder.InputPos()
					missing.Skip(fmt.Errorf("missing id attribute"), fmt.Sprintf("<%s> at line %d", name, line))
				}
				ds.Groups = append(ds.Groups, Group{ID: id, Tag: name})
				stack = append(stack, frame{group: len(ds.Groups) - 1})
				continue

			case name == opts.SampleTag && len(stack) > 0 && stack[len(stack)-1].group >= 0:
				if id == "" {
					line, _ := decoder.InputPos()
					missing.Skip(fmt.Errorf("missing id attribute"), fmt.Sprintf("<%s> at line %d", name, line))
				}
				g := &ds.Groups[stack[len(stack)-1].group]
				g.Samples = append(g.Samples, Sample{ID: id, Dir: dir, GroupID: g.ID})
			}
			stack = append(stack, frame{group: -1})

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 && len(strings.TrimSpace(string(t))) > 0 {
				line, _ := decoder.InputPos()
				return nil, dserrors.E(op, dserrors.KindParse,
					fmt.Sprintf("line %d: text outside document element", line))
			}
		}
	}

	if !sawRoot {
		return nil, dserrors.E(op, dserrors.KindParse, "no document element found")
	}

	missing.Report()
	return ds, nil
}

// attrs extracts the id and dir attributes of an element.
func attrs(start xml.StartElement) (id, dir string) {
	for _, attr := range start.Attr {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "id":
			id = attr.Value
		case "dir":
			dir = attr.Value
		}
	}
	return id, dir
}
