package advisory

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"

	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/pkg/errors"
)

// ContentGenerator renders validated records into the downstream plugin
// artifacts. Implemented by the content package; an interface here so the
// pipeline can be exercised without touching the content tree.
type ContentGenerator interface {
	GenerateCVEContent(record CVE) error
	GenerateProductContent(totalCVEs int) error
}

// Summary describes one completed harvest run.
type Summary struct {
	Parsed    int // references parsed from the bulletin
	Rendered  int // records that passed validation and were rendered
	Failed    int // references dropped on fetch, re-read or validation
	TotalCVEs int // unique identifiers in the product aggregate
}

// Harvester drives the whole pipeline strictly sequentially: each
// reference is fetched, persisted, re-read, validated and rendered before
// the next one is touched. Per-reference failures are logged and skipped;
// only a failure to retrieve the bulletin itself aborts the run.
type Harvester struct {
	bulletin  bulletinService
	details   detailService
	store     Store
	generator ContentGenerator
}

func NewHarvester(bulletin bulletinService, details detailService, store Store, generator ContentGenerator) Harvester {
	return Harvester{
		bulletin:  bulletin,
		details:   details,
		store:     store,
		generator: generator,
	}
}

func (h Harvester) Run(ctx context.Context) (Summary, error) {
	if err := h.store.EnsureLayout(); err != nil {
		return Summary{}, err
	}

	html, err := h.bulletin.FetchIndex(ctx)
	if err != nil {
		return Summary{}, err
	}

	path, err := h.store.SaveBulletin(html)
	if err != nil {
		return Summary{}, err
	}
	slog.Info("saved bulletin html", "path", path)

	base, err := url.Parse(h.bulletin.bulletinURL)
	if err != nil {
		return Summary{}, errors.Wrap(err, "could not parse bulletin url")
	}

	refs, err := ParseBulletin(bytes.NewReader(html), base)
	if err != nil {
		return Summary{}, err
	}
	slog.Info("parsed references from bulletin", "count", len(refs))

	if _, err := h.store.SaveReferences(refs); err != nil {
		return Summary{}, err
	}

	summary := Summary{Parsed: len(refs)}
	validated := make([]CVE, 0, len(refs))

	for _, ref := range refs {
		record, ok := h.processReference(ctx, ref)
		if !ok {
			summary.Failed++
			continue
		}
		validated = append(validated, record)
	}
	summary.Rendered = len(validated)

	// the same identifier may be listed under several version groups; the
	// aggregate counts it once
	unique := utils.DeduplicateSlice(validated, func(record CVE) string { return record.CVEID })
	summary.TotalCVEs = len(unique)

	if err := h.generator.GenerateProductContent(summary.TotalCVEs); err != nil {
		return summary, err
	}

	return summary, nil
}

// processReference runs one reference through fetch, persist, re-read,
// validate and render. It reports false when the reference was dropped.
func (h Harvester) processReference(ctx context.Context, ref Reference) (CVE, bool) {
	record, err := h.details.Fetch(ctx, ref)
	if err != nil {
		slog.Error("skipping reference after failed fetch", "cve", ref.CVEID, "err", err)
		return CVE{}, false
	}

	path, err := h.store.SaveCVE(record)
	if err != nil {
		slog.Error("could not persist record", "cve", ref.CVEID, "err", err)
		return CVE{}, false
	}
	slog.Info("saved record", "cve", record.CVEID, "path", path)

	// render from the persisted document, not the in-memory record: what
	// downstream consumers read is what gets validated
	stored, err := h.store.LoadCVE(path)
	if err != nil {
		slog.Error("skipping malformed record document", "path", path, "err", err)
		return CVE{}, false
	}

	if err := ValidateCVE(&stored); err != nil {
		slog.Error("skipping invalid record", "cve", ref.CVEID, "err", err)
		return CVE{}, false
	}

	if err := h.generator.GenerateCVEContent(stored); err != nil {
		slog.Error("could not render record content", "cve", stored.CVEID, "err", err)
		return CVE{}, false
	}

	return stored, true
}
