package feed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/commons-feeds/committee-rss/internal/domain"
)

const (
	houseLords         = "Lords"
	selectCategoryName = "Select"

	enclosureType   = "image/png"
	enclosureURL    = "https://committees.parliament.uk/dist/opengraph-card.png"
	enclosureLength = "123456"

	publicationLinkFormat = "https://committees.parliament.uk/publications/%d/documents/%d/default/"

	// RFC 822 layout mandated by RSS 2.0; dates are always rendered in UTC.
	rfc822GMT = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// Eligible reports whether a publication belongs in the feed. House of Lords
// items are excluded, as are items whose committee carries a named category
// other than "Select". Items without a committee, category, or category name
// pass.
func Eligible(pub domain.Publication) bool {
	c := pub.Committee
	if c == nil {
		return true
	}
	if c.House == houseLords {
		return false
	}
	if c.Category != nil && c.Category.Name != "" && c.Category.Name != selectCategoryName {
		return false
	}
	return true
}

// MapItem derives the RSS item for an eligible publication. It never fails:
// missing optional fields map to empty strings or omitted elements.
func MapItem(pub domain.Publication) domain.FeedItem {
	prefix, title := SplitReportTitle(pub.Description)

	item := domain.FeedItem{
		Title:       title,
		Description: prefix,
		Link:        deriveLink(pub),
		GUID:        deriveGUID(pub),
	}
	if pub.Committee != nil {
		item.Author = pub.Committee.Name
	}
	if pub.PublicationStartDate != nil {
		item.PubDate, _ = NormalizePubDate(*pub.PublicationStartDate)
	}
	return item
}

// NormalizePubDate converts an ISO-8601 publication start date (stored by the
// API without a timezone, implicitly UTC) to the RFC 822 form RSS requires.
// The boolean reports whether parsing succeeded; on failure the raw input is
// returned so the caller can emit it as-is.
func NormalizePubDate(raw string) (string, bool) {
	t, err := time.Parse(time.RFC3339, raw+"Z")
	if err != nil {
		return raw, false
	}
	return t.Format(rfc822GMT), true
}

// deriveLink prefers the publication's additional content URL and falls back
// to the canonical document URL built from the publication and first document
// ids. Without either it stays empty.
func deriveLink(pub domain.Publication) string {
	if pub.AdditionalContentURL != nil {
		return *pub.AdditionalContentURL
	}
	if len(pub.Documents) > 0 && pub.ID != nil && pub.Documents[0].DocumentID != nil {
		return fmt.Sprintf(publicationLinkFormat, *pub.ID, *pub.Documents[0].DocumentID)
	}
	return ""
}

// deriveGUID renders the publication id. A missing id yields an empty guid
// rather than a placeholder string.
func deriveGUID(pub domain.Publication) string {
	if pub.ID == nil {
		return ""
	}
	return strconv.FormatInt(*pub.ID, 10)
}
