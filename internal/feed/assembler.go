package feed

import (
	"encoding/xml"
	"time"

	"github.com/commons-feeds/committee-rss/internal/domain"
)

const defaultChannelTitle = "RSS Feed"

// ChannelInfo is the static channel metadata for one generated feed. It comes
// from source configuration, never from API data.
type ChannelInfo struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link" yaml:"link"`
	Description string `json:"description" yaml:"description"`
	Language    string `json:"language" yaml:"language"`
}

// RSS is the document tree rendered to the output file.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel holds feed metadata plus the item sequence.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate"`
	Items         []Item `xml:"item"`
}

// Item mirrors one RSS <item> element. Element order matches the generated
// output: title, description, author, enclosure, link, pubDate, guid.
type Item struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Author      string    `xml:"author"`
	Enclosure   Enclosure `xml:"enclosure"`
	Link        string    `xml:"link"`
	PubDate     string    `xml:"pubDate,omitempty"`
	GUID        string    `xml:"guid"`
}

// Enclosure is the fixed share-card image attached to every item.
type Enclosure struct {
	Type   string `xml:"type,attr"`
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
}

// BuildFeed assembles the RSS document for a channel from raw publications,
// keeping only eligible items in their input order. The caller supplies the
// build time so runs are reproducible under test.
func BuildFeed(info ChannelInfo, pubs []domain.Publication, now time.Time) *RSS {
	title := info.Title
	if title == "" {
		title = defaultChannelTitle
	}

	channel := Channel{
		Title:         title,
		Link:          info.Link,
		Description:   info.Description,
		Language:      info.Language,
		LastBuildDate: now.UTC().Format(rfc822GMT),
	}

	for _, pub := range pubs {
		if !Eligible(pub) {
			continue
		}
		channel.Items = append(channel.Items, newItem(MapItem(pub)))
	}

	return &RSS{Version: "2.0", Channel: channel}
}

func newItem(fi domain.FeedItem) Item {
	return Item{
		Title:       fi.Title,
		Description: fi.Description,
		Author:      fi.Author,
		Enclosure: Enclosure{
			Type:   enclosureType,
			URL:    enclosureURL,
			Length: enclosureLength,
		},
		Link:    fi.Link,
		PubDate: fi.PubDate,
		GUID:    fi.GUID,
	}
}
