package content

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/msabale-r7/openoffice-vc-plugin/advisory"
	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/pkg/errors"
)

// schemaVersion tags the product-level plugin document.
const schemaVersion = "1.0"

// The VC plugin content formats. Field order matters: the consuming plugin
// reads the documents positionally.
type vulnerabilityDoc struct {
	XMLName         xml.Name `xml:"VULNERABILITY"`
	ID              string   `xml:"ID"`
	Product         string   `xml:"PRODUCT"`
	AffectedVersion string   `xml:"AFFECTED_VERSION"`
	Description     string   `xml:"DESCRIPTION"`
	Reference       string   `xml:"REFERENCE"`
}

type solutionDoc struct {
	XMLName xml.Name `xml:"SOLUTION"`
	CVE     string   `xml:"CVE"`
	Fix     string   `xml:"FIX"`
}

type pluginEntryDoc struct {
	XMLName         xml.Name `xml:"VC_PLUGIN_ENTRY"`
	ID              string   `xml:"ID"`
	Product         string   `xml:"PRODUCT"`
	AffectedVersion string   `xml:"AFFECTED_VERSION"`
	Description     string   `xml:"DESCRIPTION"`
	Reference       string   `xml:"REFERENCE"`
	GeneratedAt     string   `xml:"GENERATED_AT"`
}

type productDoc struct {
	XMLName     xml.Name `xml:"VC_PLUGIN"`
	Product     string   `xml:"PRODUCT"`
	Version     string   `xml:"VERSION"`
	GeneratedAt string   `xml:"GENERATED_AT"`
	TotalCVEs   int      `xml:"TOTAL_CVES"`
}

// Generator renders validated records into the Content tree consumed by
// the VC plugin:
//
//	Content/<Product>/CVEs/<CVE>.xml        vulnerability description
//	Content/<Product>/CVEs/<CVE>.sol        remediation
//	Content/<Product>/CVEs/<CVE>.vck        plugin entry (timestamped)
//	Content/<Product>/OSV/<CVE>.osv.json    OSV interchange document
//	Content/<Product>/product.vck           product aggregate, once per run
//
// All writes are create-or-replace and atomic. Rendering the same record
// twice differs only in the generation timestamps.
type Generator struct {
	productName string
	contentDir  string
	now         func() time.Time
}

func NewGenerator(productName, contentDir string) Generator {
	return Generator{
		productName: productName,
		contentDir:  contentDir,
		now:         time.Now,
	}
}

func (g Generator) productRoot() string { return filepath.Join(g.contentDir, g.productName) }
func (g Generator) cvesDir() string     { return filepath.Join(g.productRoot(), "CVEs") }
func (g Generator) osvDir() string      { return filepath.Join(g.productRoot(), "OSV") }

func (g Generator) generatedAt() string {
	return g.now().UTC().Format(time.RFC3339)
}

// GenerateCVEContent writes every per-record document for one validated
// record.
func (g Generator) GenerateCVEContent(record advisory.CVE) error {
	for _, dir := range []string{g.cvesDir(), g.osvDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "could not create content directory")
		}
	}

	name := utils.SafeFilename(record.CVEID)

	vuln := vulnerabilityDoc{
		ID:              record.CVEID,
		Product:         g.productName,
		AffectedVersion: record.AffectedVersion,
		Description:     record.Description,
		Reference:       record.SourceURL,
	}
	if err := g.writeXML(filepath.Join(g.cvesDir(), name+".xml"), vuln); err != nil {
		return err
	}

	sol := solutionDoc{
		CVE: record.CVEID,
		Fix: fmt.Sprintf("Upgrade to the latest supported %s version.", g.productName),
	}
	if err := g.writeXML(filepath.Join(g.cvesDir(), name+".sol"), sol); err != nil {
		return err
	}

	entry := pluginEntryDoc{
		ID:              record.CVEID,
		Product:         g.productName,
		AffectedVersion: record.AffectedVersion,
		Description:     record.Description,
		Reference:       record.SourceURL,
		GeneratedAt:     g.generatedAt(),
	}
	if err := g.writeXML(filepath.Join(g.cvesDir(), name+".vck"), entry); err != nil {
		return err
	}

	return g.writeOSV(filepath.Join(g.osvDir(), name+".osv.json"), record)
}

// GenerateProductContent writes the product-level aggregate. It is emitted
// exactly once per run, after the full record set is known.
func (g Generator) GenerateProductContent(totalCVEs int) error {
	if err := os.MkdirAll(g.productRoot(), 0o755); err != nil {
		return errors.Wrap(err, "could not create content directory")
	}

	doc := productDoc{
		Product:     g.productName,
		Version:     schemaVersion,
		GeneratedAt: g.generatedAt(),
		TotalCVEs:   totalCVEs,
	}
	return g.writeXML(filepath.Join(g.productRoot(), "product.vck"), doc)
}

func (g Generator) writeXML(path string, doc any) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal xml document")
	}

	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return errors.Wrap(err, "could not write xml document")
	}

	slog.Info("saved content document", "path", path)
	return nil
}
