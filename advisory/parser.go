package advisory

import (
	"io"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/msabale-r7/openoffice-vc-plugin/utils"
	"github.com/pkg/errors"
)

// collapseText is the goquery analog of stripped node text: the visible
// text of the selection with all whitespace runs collapsed.
func collapseText(sel *goquery.Selection) string {
	return utils.CollapseWhitespace(sel.Text())
}

// ParseBulletin converts the bulletin HTML into the flat, ordered list of
// references it contains. The bulletin groups vulnerabilities under h3
// headings, each followed by a ul whose list items link to the per-CVE
// advisory page. Missing structure is never an error: a heading without a
// list contributes nothing, as does a list item without a usable link.
//
// Parsing is deterministic - the same document always yields the same
// sequence of references.
func ParseBulletin(r io.Reader, base *url.URL) ([]Reference, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse bulletin html")
	}

	refs := make([]Reference, 0)

	doc.Find("h3").Each(func(_ int, heading *goquery.Selection) {
		version := collapseText(heading)

		list := heading.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			return
		}

		list.Find("li").Each(func(_ int, item *goquery.Selection) {
			link := item.Find("a").First()
			if link.Length() == 0 {
				return
			}
			href, ok := link.Attr("href")
			if !ok || href == "" {
				return
			}

			target, err := base.Parse(href)
			if err != nil {
				slog.Debug("skipping list item with unresolvable link", "href", href, "err", err)
				return
			}

			summary := collapseText(item)
			for _, cveID := range ExtractCVEIDs(collapseText(link)) {
				refs = append(refs, Reference{
					CVEID:   cveID,
					Version: version,
					Summary: summary,
					Link:    target.String(),
				})
			}
		})
	})

	return refs, nil
}
