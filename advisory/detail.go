package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
)

// TerminalFetchError is returned once the attempt budget for a single
// reference is exhausted. The caller logs it and moves on to the next
// reference; it never aborts the run.
type TerminalFetchError struct {
	CVEID    string
	Attempts int
	Err      error
}

func (e *TerminalFetchError) Error() string {
	return fmt.Sprintf("giving up on %s after %d attempts: %v", e.CVEID, e.Attempts, e.Err)
}

func (e *TerminalFetchError) Unwrap() error {
	return e.Err
}

// DetailOptions configures the per-reference enrichment fetches.
type DetailOptions struct {
	UserAgent       string
	MaxAttempts     int
	RequestTimeout  time.Duration
	RetryDelay      time.Duration
	PolitenessDelay time.Duration
}

type detailService struct {
	httpClient *http.Client
	opts       DetailOptions
}

// NewDetailService returns the service that enriches a single reference by
// fetching and parsing its advisory detail page.
func NewDetailService(opts DetailOptions) detailService {
	return detailService{
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		opts:       opts,
	}
}

// Fetch retrieves the detail page of ref and builds the enriched record.
// Transport errors and non-2xx statuses are retried with a fixed delay up
// to the configured attempt budget; the delay is deliberately constant
// rather than exponential to stay polite toward the advisory host. After a
// successful fetch a politeness pause is observed before returning, which
// throttles the caller's next request.
func (s detailService) Fetch(ctx context.Context, ref Reference) (CVE, error) {
	var record CVE
	attempts := 0

	operation := func() error {
		attempts++
		rec, err := s.fetchOnce(ctx, ref)
		if err != nil {
			return err
		}
		record = rec
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryDelay), uint64(s.opts.MaxAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(operation, policy, func(err error, _ time.Duration) {
		slog.Warn("detail fetch failed, retrying", "cve", ref.CVEID, "attempt", attempts, "maxAttempts", s.opts.MaxAttempts, "err", err)
	})
	if err != nil {
		return CVE{}, &TerminalFetchError{CVEID: ref.CVEID, Attempts: attempts, Err: err}
	}

	time.Sleep(s.opts.PolitenessDelay)
	return record, nil
}

func (s detailService) fetchOnce(ctx context.Context, ref Reference) (CVE, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.Link, nil)
	if err != nil {
		// a link that cannot even become a request will not get better on retry
		return CVE{}, backoff.Permanent(errors.Wrap(err, "could not create detail request"))
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return CVE{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return CVE{}, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return CVE{}, errors.Wrap(err, "could not parse detail page")
	}

	description := parseDescription(doc)
	if description == "" {
		description = ref.Summary
	}

	return CVE{
		CVEID:           ref.CVEID,
		AffectedVersion: ref.Version,
		Description:     description,
		SourceURL:       ref.Link,
	}, nil
}

// parseDescription joins the visible text of every paragraph inside the
// primary content region, in document order.
func parseDescription(doc *goquery.Document) string {
	paragraphs := make([]string, 0)
	doc.Find("#content p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseText(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, " ")
}
