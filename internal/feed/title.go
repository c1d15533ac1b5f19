package feed

import (
	"regexp"
	"strings"
)

// Publication descriptions arrive as "58th Report - Annual review of ...".
// The prefix before the divider is the sequence designation, the rest is the
// descriptive title.
var (
	dividerRe = regexp.MustCompile(`\s*[-\x{2013}\x{2014}:]\s*`)
	ordinalRe = regexp.MustCompile(`(?i)^\d+(st|nd|rd|th)\s+(Special\s+)?Report$`)
)

// SplitReportTitle splits a description into its ordinal report prefix and
// title. The split happens at the first divider (hyphen, en dash, em dash, or
// colon, optionally surrounded by whitespace); any further dividers stay in
// the title. Input without a recognizable prefix comes back unchanged with an
// empty prefix.
func SplitReportTitle(s string) (prefix, title string) {
	parts := dividerRe.Split(s, 2)
	if len(parts) != 2 {
		return "", s
	}

	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])

	if !ordinalRe.MatchString(left) {
		return "", s
	}
	return left, right
}
