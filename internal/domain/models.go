package domain

// Domain contains core models shared across the module.

// Publication is one record from the committees publications API. Every field
// is optional on the wire; pointer fields distinguish absent from zero.
type Publication struct {
	ID                   *int64     `json:"id"`
	Description          string     `json:"description"`
	AdditionalContentURL *string    `json:"additionalContentUrl"`
	Documents            []Document `json:"documents"`
	PublicationStartDate *string    `json:"publicationStartDate"`
	Committee            *Committee `json:"committee"`
}

// Document is one attachment of a publication.
type Document struct {
	DocumentID *int64 `json:"documentId"`
}

// Committee identifies the publishing committee.
type Committee struct {
	Name     string    `json:"name"`
	House    string    `json:"house"`
	Category *Category `json:"category"`
}

// Category classifies a committee (e.g. "Select", "Backbench").
type Category struct {
	Name string `json:"name"`
}

// FeedItem is one rendered RSS item derived from an eligible Publication.
// Description carries the ordinal report prefix and may be empty. An empty
// PubDate means the source record had no publication start date and the
// element is omitted from the output.
type FeedItem struct {
	Title       string
	Description string
	Author      string
	Link        string
	PubDate     string
	GUID        string
}
