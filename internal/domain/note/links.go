package note

import (
	"regexp"
	"strings"
)

var wikiLink = regexp.MustCompile(`\[\[(.*?)\]\]`)

// OutgoingLinks returns the distinct [[Title]] references in content, in
// order of first appearance.
func OutgoingLinks(content string) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, m := range wikiLink.FindAllStringSubmatch(content, -1) {
		title := strings.TrimSpace(m[1])
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, title)
	}
	return out
}

// LinksTo reports whether n's content references title, ignoring case.
func (n Note) LinksTo(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	return strings.Contains(strings.ToLower(n.Content), "[["+strings.ToLower(title)+"]]")
}

// Matches reports whether query occurs in n's title, content or tags, ignoring case.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
