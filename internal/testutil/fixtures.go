package testutil

// Fixture documents for tests

// ExampleDataset has group G1 with S1 (dir /data/s1) and S2 (no dir), and
// group G2 with S3.
const ExampleDataset = `<?xml version="1.0"?>
<dataset>
  <group id="G1">
    <sample id="S1" dir="/data/s1"/>
    <sample id="S2"/>
  </group>
  <group id="G2">
    <sample id="S3"/>
  </group>
</dataset>
`

// PatientDataset uses the legacy patient element name.
const PatientDataset = `<?xml version="1.0"?>
<patients>
  <patient id="P1">
    <sample id="P1-tumor" dir="/seq/P1/tumor"/>
    <sample id="P1-normal" dir="/seq/P1/normal"/>
  </patient>
  <patient id="P2">
    <sample id="P2-tumor" dir=""/>
  </patient>
</patients>
`

// MixedDataset mixes both group element names, unknown elements and
// attributes, and nesting.
const MixedDataset = `<root version="2">
  <meta><note>ignored</note></meta>
  <cohort>
    <patient id="P1" sex="F">
      <sample id="S1" dir="/a/s1" lane="3"/>
      <annotation><sample id="deep"/></annotation>
    </patient>
  </cohort>
  <group id="G1">
    <sample id="S2">
      <file path="x"/>
    </sample>
    <group id="G1a">
      <sample id="S3"/>
    </group>
    <sample id="S4" dir="/a/s4"/>
  </group>
  <sample id="orphan"/>
</root>
`

// DuplicateDataset repeats ids so first-match lookups can be checked.
const DuplicateDataset = `<dataset>
  <group id="G1">
    <sample id="S1" dir="/first"/>
  </group>
  <group id="G1">
    <sample id="S1" dir="/second"/>
    <sample id="S2"/>
  </group>
</dataset>
`

// Malformed documents, keyed by what is wrong with them.
var Malformed = map[string]string{
	"empty":           "",
	"whitespace":      "   \n ",
	"unclosed":        `<dataset><group id="G1"><sample id="S1"/>`,
	"mismatched":      `<dataset><group id="G1"></sample></dataset>`,
	"two roots":       `<dataset/><dataset/>`,
	"text after root": `<dataset/>trailing`,
	"bad attribute":   `<dataset><group id=G1/></dataset>`,
	"not xml":         "id,dir\nS1,/data/s1\n",
}
