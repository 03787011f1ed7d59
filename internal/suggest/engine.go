// Package suggest implements autocomplete for comma-separated token fields
// such as task contexts and tags. The last token in the buffer is the one
// being typed; earlier tokens are treated as already chosen.
package suggest

import "strings"

// MaxSuggestions is the default cap on results returned by Suggest.
const MaxSuggestions = 10

// Suggest filters corpus down to entries matching the in-progress token of
// buffer. Matching is case-insensitive substring; entries already chosen as
// earlier tokens are excluded; corpus order is preserved. An empty in-progress
// token yields no suggestions. Results are capped at MaxSuggestions.
func Suggest(buffer string, corpus []string) []string {
	return SuggestN(buffer, corpus, MaxSuggestions)
}

// SuggestN is Suggest with a caller-chosen cap. A non-positive limit falls
// back to MaxSuggestions.
func SuggestN(buffer string, corpus []string, limit int) []string {
	if limit <= 0 {
		limit = MaxSuggestions
	}
	parts := splitTokens(buffer)
	current := parts[len(parts)-1]
	if current == "" {
		return nil
	}

	chosen := make(map[string]bool, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		if p != "" {
			chosen[strings.ToLower(p)] = true
		}
	}

	query := strings.ToLower(current)
	var out []string
	for _, candidate := range corpus {
		if chosen[strings.ToLower(candidate)] {
			continue
		}
		if strings.Contains(strings.ToLower(candidate), query) {
			out = append(out, candidate)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Accept replaces the in-progress token of buffer with chosen and appends
// ", " so the field is ready for the next token.
func Accept(buffer, chosen string) string {
	idx := strings.LastIndex(buffer, ",")
	if idx < 0 {
		return chosen + ", "
	}
	return buffer[:idx+1] + " " + chosen + ", "
}

func splitTokens(buffer string) []string {
	raw := strings.Split(buffer, ",")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
