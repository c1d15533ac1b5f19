package feed

import (
	"encoding/xml"
	"fmt"
)

// Render serializes the document as UTF-8 XML with a declaration header and
// two-space indentation. Output is deterministic for a given tree.
func Render(doc *RSS) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss document: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
