package igc

import "fmt"

// Validate does a structural check of an IGC document and returns human-readable
// issues; no issues means the document is valid. It does not decode the fixes, so
// a document can validate and still contain B records that Decode will skip.
func Validate(text string) []string {
	doc := Parse(text)
	issues := []string{}

	if len(doc.Of(Manufacturer)) == 0 {
		issues = append(issues, "missing manufacturer record (A)")
	}
	if !doc.HasHeader("HFDTE") {
		issues = append(issues, "missing date header (HFDTE)")
	}

	fixes := doc.Of(Fix)
	if len(fixes) == 0 {
		issues = append(issues, "no fix records (B)")
	}
	for i,r := range fixes {
		if len(r.Text) < MinFixRecordLength {
			issues = append(issues, fmt.Sprintf("fix record %d (line %d) is too short: %d chars, need %d",
				i+1, r.Line, len(r.Text), MinFixRecordLength))
		}
	}

	return issues
}
