package content

import (
	"encoding/json"

	"github.com/msabale-r7/openoffice-vc-plugin/advisory"
	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/pkg/errors"
)

// A minimal OSV (Open Source Vulnerability) document, the interchange
// format most vulnerability tooling understands. Only the fields this
// pipeline can actually fill are present.
type osvPackage struct {
	Ecosystem string `json:"ecosystem,omitempty"`
	Name      string `json:"name,omitempty"`
}

type osvAffected struct {
	Package  osvPackage `json:"package,omitempty"`
	Versions []string   `json:"versions,omitempty"`
}

type osvReference struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

type osvDocument struct {
	SchemaVersion string         `json:"schema_version,omitempty"`
	ID            string         `json:"id,omitempty"`
	Modified      string         `json:"modified,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Details       string         `json:"details,omitempty"`
	Affected      []osvAffected  `json:"affected,omitempty"`
	References    []osvReference `json:"references,omitempty"`
}

const osvSchemaVersion = "1.6.0"

func (g Generator) writeOSV(path string, record advisory.CVE) error {
	doc := osvDocument{
		SchemaVersion: osvSchemaVersion,
		ID:            record.CVEID,
		Modified:      g.generatedAt(),
		Summary:       record.CVEID + " in " + g.productName,
		Details:       record.Description,
		Affected: []osvAffected{
			{
				Package:  osvPackage{Name: g.productName},
				Versions: []string{record.AffectedVersion},
			},
		},
	}
	if record.SourceURL != "" {
		doc.References = []osvReference{{Type: "ADVISORY", URL: record.SourceURL}}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal osv document")
	}
	data = append(data, '\n')

	return errors.Wrap(utils.WriteFileAtomic(path, data, 0o644), "could not write osv document")
}
