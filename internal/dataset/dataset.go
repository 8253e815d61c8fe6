// Package dataset holds the in-memory group/sample tree read from a dataset
// document, and the scans every query is built from.
package dataset

// Dataset is the root container. It is read-only once loaded.
type Dataset struct {
	Source string
	Groups []Group
}

// Group is a named collection of samples, read from a group or patient element.
type Group struct {
	ID      string
	Tag     string
	Samples []Sample
}

// Sample is a leaf entry owned by exactly one group.
type Sample struct {
	ID      string
	Dir     string
	GroupID string
}

// DirOrID returns the sample directory, or its id when no directory is set.
func (s Sample) DirOrID() string {
	if s.Dir != "" {
		return s.Dir
	}
	return s.ID
}

// AllGroups returns every group in document order.
func (d *Dataset) AllGroups() []Group {
	return d.Groups
}

// AllSamples returns every sample in document order, flattened across groups.
func (d *Dataset) AllSamples() []Sample {
	var samples []Sample
	for _, g := range d.Groups {
		samples = append(samples, g.Samples...)
	}
	return samples
}

// GroupByID returns the first group with the given id.
func (d *Dataset) GroupByID(id string) (*Group, bool) {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i], true
		}
	}
	return nil, false
}

// OwningGroup returns the first group containing a sample with the given id.
func (d *Dataset) OwningGroup(sampleID string) (*Group, bool) {
	for i := range d.Groups {
		for _, s := range d.Groups[i].Samples {
			if s.ID == sampleID {
				return &d.Groups[i], true
			}
		}
	}
	return nil, false
}

// SampleByID returns the first sample with the given id.
func (d *Dataset) SampleByID(id string) (*Sample, bool) {
	for i := range d.Groups {
		for j := range d.Groups[i].Samples {
			if d.Groups[i].Samples[j].ID == id {
				return &d.Groups[i].Samples[j], true
			}
		}
	}
	return nil, false
}

// SampleCount returns the total number of samples.
func (d *Dataset) SampleCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Samples)
	}
	return n
}
