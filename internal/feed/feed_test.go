package feed

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/commons-feeds/committee-rss/internal/domain"
)

var buildTime = time.Date(2024, time.January, 20, 12, 30, 0, 0, time.UTC)

func TestBuildFeedAppliesChannelDefaults(t *testing.T) {
	doc := BuildFeed(ChannelInfo{}, nil, buildTime)

	if doc.Version != "2.0" {
		t.Errorf("version = %q", doc.Version)
	}
	if doc.Channel.Title != "RSS Feed" {
		t.Errorf("expected default title, got %q", doc.Channel.Title)
	}
	if doc.Channel.Link != "" || doc.Channel.Description != "" {
		t.Errorf("expected empty link/description defaults, got %q / %q",
			doc.Channel.Link, doc.Channel.Description)
	}
	if doc.Channel.LastBuildDate != "Sat, 20 Jan 2024 12:30:00 GMT" {
		t.Errorf("lastBuildDate = %q", doc.Channel.LastBuildDate)
	}
}

func TestBuildFeedKeepsEligibleItemsInOrder(t *testing.T) {
	pubs := []domain.Publication{
		{ID: int64Ptr(1), Description: "1st Report - First", Committee: committee("Commons", "Select")},
		{ID: int64Ptr(2), Description: "2nd Report - Lords out", Committee: committee("Lords", "")},
		{ID: int64Ptr(3), Description: "3rd Report - Third", Committee: committee("Commons", "")},
		{ID: int64Ptr(4), Description: "4th Report - Backbench out", Committee: committee("Commons", "Backbench")},
		{ID: int64Ptr(5), Description: "5th Report - Fifth"},
	}

	doc := BuildFeed(ChannelInfo{Title: "Reports"}, pubs, buildTime)
	if len(doc.Channel.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(doc.Channel.Items))
	}
	for i, want := range []string{"1", "3", "5"} {
		if doc.Channel.Items[i].GUID != want {
			t.Errorf("item[%d].GUID = %q, want %q", i, doc.Channel.Items[i].GUID, want)
		}
	}
}

func TestRenderRoundTrip(t *testing.T) {
	info := ChannelInfo{
		Title:       "House of Commons Select Committee Reports",
		Link:        "https://committees.parliament.uk/publications/",
		Description: "Latest reports from House of Commons select committees",
		Language:    "en-gb",
	}
	pubs := []domain.Publication{
		{
			ID:                   int64Ptr(42),
			Description:          "58th Report - Title X",
			AdditionalContentURL: strPtr("https://x.test/1"),
			PublicationStartDate: strPtr("2024-01-15T10:00:00"),
			Committee:            &domain.Committee{Name: "Defence Committee", House: "Commons"},
		},
		{
			ID:          int64Ptr(43),
			Description: "59th Report - Title Y",
			Documents:   []domain.Document{{DocumentID: int64Ptr(7)}},
		},
	}

	raw, err := Render(BuildFeed(info, pubs, buildTime))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte(xml.Header)) {
		t.Fatalf("expected xml declaration, got %q", raw[:40])
	}
	if !bytes.Contains(raw, []byte("\n  <channel>")) {
		t.Errorf("expected two-space indentation")
	}

	var parsed RSS
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("reparse output: %v", err)
	}
	if parsed.Version != "2.0" {
		t.Errorf("version = %q", parsed.Version)
	}
	if parsed.Channel.Language != "en-gb" {
		t.Errorf("language = %q", parsed.Channel.Language)
	}
	if len(parsed.Channel.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(parsed.Channel.Items))
	}

	first := parsed.Channel.Items[0]
	if first.Title != "Title X" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Description != "58th Report" {
		t.Errorf("description = %q", first.Description)
	}
	if first.Author != "Defence Committee" {
		t.Errorf("author = %q", first.Author)
	}
	if first.Link != "https://x.test/1" {
		t.Errorf("link = %q", first.Link)
	}
	if first.PubDate != "Mon, 15 Jan 2024 10:00:00 GMT" {
		t.Errorf("pubDate = %q", first.PubDate)
	}
	if first.GUID != "42" {
		t.Errorf("guid = %q", first.GUID)
	}
	if first.Enclosure.URL != "https://committees.parliament.uk/dist/opengraph-card.png" ||
		first.Enclosure.Type != "image/png" || first.Enclosure.Length != "123456" {
		t.Errorf("enclosure = %+v", first.Enclosure)
	}

	second := parsed.Channel.Items[1]
	if second.Link != "https://committees.parliament.uk/publications/43/documents/7/default/" {
		t.Errorf("second link = %q", second.Link)
	}
	if second.PubDate != "" {
		t.Errorf("expected no pubDate on second item, got %q", second.PubDate)
	}

	// Items without a start date must not carry a pubDate element at all.
	if strings.Count(string(raw), "<pubDate>") != 1 {
		t.Errorf("expected exactly one pubDate element in output")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := BuildFeed(ChannelInfo{Title: "Reports"}, []domain.Publication{
		{ID: int64Ptr(1), Description: "1st Report - A"},
	}, buildTime)

	first, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output across renders")
	}
}
