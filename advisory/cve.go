package advisory

import "regexp"

// cveIDPattern finds CVE identifiers embedded anywhere in free text, e.g.
// "CVE-2020-13958 / CVE-2020-13959". cveIDExactPattern is the anchored
// variant used during validation.
var (
	cveIDPattern      = regexp.MustCompile(`CVE-\d{4}-\d+`)
	cveIDExactPattern = regexp.MustCompile(`^CVE-\d{4}-\d+$`)
)

// Reference is a single (identifier, version group, link) tuple parsed from
// the security bulletin, prior to enrichment. A bulletin list item naming
// two identifiers yields two references sharing the same link and summary.
type Reference struct {
	CVEID   string `json:"cve_id"`
	Version string `json:"version"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// CVE is the enriched record built from a reference and its detail page.
// It is immutable once validated and is the unit of all rendered output.
type CVE struct {
	CVEID           string `json:"cve_id" validate:"required,cveid"`
	AffectedVersion string `json:"affected_version" validate:"required"`
	Description     string `json:"description" validate:"required"`
	SourceURL       string `json:"source_url" validate:"omitempty,url"`
}

// ExtractCVEIDs returns every CVE identifier found in text, in order of
// first appearance. Duplicates are preserved.
func ExtractCVEIDs(text string) []string {
	return cveIDPattern.FindAllString(text, -1)
}
