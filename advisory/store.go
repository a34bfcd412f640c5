package advisory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/pkg/errors"
)

// Store persists the intermediate pipeline artifacts under the data
// directory:
//
//	data/raw/<product>_advisory.html   verbatim bulletin copy (provenance)
//	data/parsed/<product>_vulns.json   pre-enrichment reference summary
//	data/parsed/cves/<CVE>.json        one enriched record per file
//
// Reruns overwrite by identifier-derived filename; every write is atomic.
type Store struct {
	dataDir string
	product string
}

func NewStore(dataDir, productName string) Store {
	return Store{dataDir: dataDir, product: strings.ToLower(productName)}
}

func (s Store) rawDir() string    { return filepath.Join(s.dataDir, "raw") }
func (s Store) parsedDir() string { return filepath.Join(s.dataDir, "parsed") }
func (s Store) cvesDir() string   { return filepath.Join(s.parsedDir(), "cves") }

// EnsureLayout creates the data directory tree.
func (s Store) EnsureLayout() error {
	for _, dir := range []string{s.rawDir(), s.cvesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "could not create data directory")
		}
	}
	return nil
}

// SaveBulletin writes the verbatim bulletin HTML and returns its path.
func (s Store) SaveBulletin(html []byte) (string, error) {
	path := filepath.Join(s.rawDir(), fmt.Sprintf("%s_advisory.html", s.product))
	if err := utils.WriteFileAtomic(path, html, 0o644); err != nil {
		return "", errors.Wrap(err, "could not save bulletin html")
	}
	return path, nil
}

// SaveReferences writes the pre-enrichment summary of every parsed
// reference as a single JSON array.
func (s Store) SaveReferences(refs []Reference) (string, error) {
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "could not marshal references")
	}

	path := filepath.Join(s.parsedDir(), fmt.Sprintf("%s_vulns.json", s.product))
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "could not save references")
	}
	return path, nil
}

// SaveCVE persists one enriched record and returns its path.
func (s Store) SaveCVE(record CVE) (string, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "could not marshal record")
	}

	path := filepath.Join(s.cvesDir(), utils.SafeFilename(record.CVEID)+".json")
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "could not save record")
	}
	return path, nil
}

// LoadCVE reads a persisted record back. A malformed document is the
// caller's cue to skip that record, never to abort the run.
func (s Store) LoadCVE(path string) (CVE, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CVE{}, errors.Wrap(err, "could not read record")
	}

	var record CVE
	if err := json.Unmarshal(data, &record); err != nil {
		return CVE{}, errors.Wrap(err, "could not unmarshal record")
	}
	return record, nil
}

// ListCVEFiles returns the paths of all persisted records, sorted for a
// deterministic regeneration order.
func (s Store) ListCVEFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.cvesDir(), "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "could not list record files")
	}
	sort.Strings(matches)
	return matches, nil
}
