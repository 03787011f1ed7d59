package vault

import "strings"

// FormatLink renders a note name as a wiki-style link: [[Name]].
// Already-wrapped names are returned unchanged.
func FormatLink(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "[[") && strings.HasSuffix(name, "]]") {
		return name
	}
	return "[[" + name + "]]"
}

// ParseLink strips the wiki-link wrapper from a reference, returning the
// note name. Plain names pass through unchanged. A display alias after a
// pipe ([[Name|Alias]]) is dropped.
func ParseLink(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "[[") && strings.HasSuffix(ref, "]]") {
		ref = ref[2 : len(ref)-2]
	}
	if i := strings.Index(ref, "|"); i >= 0 {
		ref = ref[:i]
	}
	return strings.TrimSpace(ref)
}

// FormatLinks wraps and de-duplicates a set of note references, preserving
// first-seen order. Duplicate detection compares parsed names, so "Name" and
// "[[Name]]" collapse to one entry.
func FormatLinks(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	var out []string
	for _, r := range refs {
		name := ParseLink(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, FormatLink(name))
	}
	return out
}
