// Package igc reads and writes the IGC flight recorder format: the fixed-column text
// format that gliding and paragliding tools exchange tracks in.
//
// Only the subset we produce is written: one A record, a fixed set of H records, a
// single I record, one B record per fix, and a G record. Decoding is more forgiving,
// and copes with the header variants that real recorders emit.
package igc

import (
	"strings"
)

const(
	DefaultManufacturer = "SKY"
	DefaultDeviceID     = "TRK"
	DefaultDeviceType   = "001"
	DefaultPilot        = "Unknown Pilot"
	DefaultGliderType   = "SkyTracker"
	DefaultGliderID     = "SKY001"
	DefaultVersion      = "1.0"
	DefaultRecorderType = "flightlog"

	// The only extension layout we support: fix accuracy then satellites in use.
	ExtensionRecord = "I013638FXA3941SIU"

	FixRecordLength    = 39
	MinFixRecordLength = 35 // Everything up to and including GPS altitude
)

// Metadata is the non-track information that goes into the header records. The zero
// value is fine; every field has a default.
type Metadata struct {
	PilotName        string
	Manufacturer     string // 3 letters
	DeviceID         string // 3 characters
	DeviceType       string // 3 digits
	GliderType       string
	GliderID         string
	FirmwareVersion  string
	HardwareVersion  string
	RecorderType     string // Appended to "SkyTracker," in the FTY header
	CompetitionID    string
	CompetitionClass string
}

func orDefault(s, def string) string {
	if s = oneLine(s); s == "" { return def }
	return s
}

// Header values can't be allowed to break a record over two lines.
func oneLine(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// {{{ Document

type RecordKind int

const(
	Other RecordKind = iota
	Manufacturer
	Header
	Extension
	Fix
	Security
)

func (k RecordKind)String() string {
	switch k {
	case Manufacturer: return "A"
	case Header:       return "H"
	case Extension:    return "I"
	case Fix:          return "B"
	case Security:     return "G"
	default:           return "?"
	}
}

func kindOf(line string) RecordKind {
	if line == "" { return Other }
	switch line[0] {
	case 'A': return Manufacturer
	case 'H': return Header
	case 'I': return Extension
	case 'B': return Fix
	case 'G': return Security
	}
	return Other
}

// Record is one line of an IGC document. Line is 1-based, and zero for records
// we built ourselves.
type Record struct {
	Kind RecordKind
	Text string
	Line int
}

// A Document is the ordered list of records in an IGC file. Documents are built once
// and not edited; re-encoding a track always builds a fresh one.
type Document []Record

// Parse splits text into records. It never fails; unknown and blank lines come back
// as Other, so that line numbers still line up with the input.
func Parse(text string) Document {
	doc := Document{}
	for i,line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		doc = append(doc, Record{Kind:kindOf(line), Text:line, Line:i+1})
	}
	return doc
}

func (d Document)String() string {
	lines := make([]string, 0, len(d))
	for _,r := range d {
		lines = append(lines, r.Text)
	}
	return strings.Join(lines, "\n")
}

// Of returns the records of the given kind, in order.
func (d Document)Of(kind RecordKind) []Record {
	ret := []Record{}
	for _,r := range d {
		if r.Kind == kind { ret = append(ret, r) }
	}
	return ret
}

// HasHeader reports whether there is an H record beginning with prefix (e.g. "HFDTE").
func (d Document)HasHeader(prefix string) bool {
	for _,r := range d.Of(Header) {
		if strings.HasPrefix(r.Text, prefix) { return true }
	}
	return false
}

// }}}
