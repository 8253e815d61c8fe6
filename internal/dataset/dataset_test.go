package dataset

import (
	"testing"

	"github.com/nishad/dsquery/internal/testutil"
)

func TestDirOrID(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   string
	}{
		{"dir set", Sample{ID: "S1", Dir: "/data/s1"}, "/data/s1"},
		{"dir missing", Sample{ID: "S2"}, "S2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.DirOrID(); got != tt.want {
				t.Errorf("DirOrID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllSamplesFlattensGroups(t *testing.T) {
	ds := mustParse(t, testutil.MixedDataset)

	var concatenated []string
	for _, g := range ds.AllGroups() {
		concatenated = append(concatenated, sampleIDs(g.Samples)...)
	}
	testutil.AssertLines(t, sampleIDs(ds.AllSamples()), concatenated...)
}

func TestGroupByID(t *testing.T) {
	ds := mustParse(t, testutil.ExampleDataset)

	g, ok := ds.GroupByID("G2")
	if !ok || g.ID != "G2" {
		t.Fatalf("expected to find G2, got %v %v", g, ok)
	}
	if _, ok := ds.GroupByID("BADGROUP"); ok {
		t.Error("expected no match for BADGROUP")
	}
}

func TestOwningGroup(t *testing.T) {
	ds := mustParse(t, testutil.ExampleDataset)

	for _, g := range ds.AllGroups() {
		for _, s := range g.Samples {
			owner, ok := ds.OwningGroup(s.ID)
			if !ok {
				t.Fatalf("no owner found for %s", s.ID)
			}
			if owner.ID != g.ID {
				t.Errorf("owner of %s = %s, want %s", s.ID, owner.ID, g.ID)
			}
		}
	}

	if _, ok := ds.OwningGroup("missing"); ok {
		t.Error("expected no owner for unknown sample")
	}
}

func TestFirstMatchWins(t *testing.T) {
	ds := mustParse(t, testutil.DuplicateDataset)

	g, _ := ds.GroupByID("G1")
	if len(g.Samples) != 1 {
		t.Errorf("expected the first G1 (1 sample), got %d samples", len(g.Samples))
	}

	s, ok := ds.SampleByID("S1")
	if !ok || s.Dir != "/first" {
		t.Errorf("expected first S1 with dir /first, got %+v", s)
	}

	owner, _ := ds.OwningGroup("S2")
	if owner != &ds.Groups[1] {
		t.Error("expected S2 to be owned by the second group")
	}
}
