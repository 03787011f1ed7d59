// Package conflict finds likely duplicates between an incoming batch of
// tasks and the tasks already in the vault.
package conflict

import (
	"strings"
	"time"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

type Detector struct {
	LevenshteinThreshold int
	MinTitleLength       int
	DateProximityHours   int
}

func NewDetector() *Detector {
	return &Detector{
		LevenshteinThreshold: 3,
		MinTitleLength:       10,
		DateProximityHours:   24,
	}
}

type Match struct {
	IncomingIndex int
	ExistingIndex int
	Confidence    float64
}

// FindDuplicates reports which incoming tasks likely already exist.
// Exact UID matches are checked first, then fuzzy title plus due-date
// proximity for tasks without a UID hit.
func (d *Detector) FindDuplicates(incoming, existing []*model.Task) []Match {
	var matches []Match

	uidIndex := make(map[string]int)
	for j, t := range existing {
		if t.UID != "" {
			uidIndex[t.UID] = j
		}
	}

	matched := make(map[int]bool)

	for i, in := range incoming {
		if in.UID != "" {
			if j, ok := uidIndex[in.UID]; ok {
				matches = append(matches, Match{
					IncomingIndex: i,
					ExistingIndex: j,
					Confidence:    d.confidence(in, existing[j]),
				})
				matched[j] = true
			}
		}
	}

	for i, in := range incoming {
		if in.UID != "" {
			if _, ok := uidIndex[in.UID]; ok {
				continue
			}
		}
		for j, ex := range existing {
			if matched[j] {
				continue
			}
			if d.isDuplicate(in, ex) {
				matches = append(matches, Match{
					IncomingIndex: i,
					ExistingIndex: j,
					Confidence:    d.confidence(in, ex),
				})
			}
		}
	}

	return matches
}

func (d *Detector) isDuplicate(a, b *model.Task) bool {
	if a.UID != "" && b.UID != "" && a.UID == b.UID {
		return true
	}

	if !d.fuzzyTitleMatch(a.Title, b.Title) {
		return false
	}

	if a.Due != nil && b.Due != nil {
		return d.timeMatch(*a.Due, *b.Due)
	}
	// No dates to disambiguate; title match is all we have.
	return a.Due == nil && b.Due == nil
}

func (d *Detector) fuzzyTitleMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return true
	}

	if len(a) > d.MinTitleLength && len(b) > d.MinTitleLength {
		return levenshteinDistance(a, b) < d.LevenshteinThreshold
	}

	return false
}

func (d *Detector) timeMatch(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < time.Duration(d.DateProximityHours)*time.Hour
}

func (d *Detector) confidence(a, b *model.Task) float64 {
	score := 0.0

	if a.UID != "" && b.UID != "" && a.UID == b.UID {
		score += 1.0
	}

	if strings.EqualFold(a.Title, b.Title) {
		score += 0.5
	} else if d.fuzzyTitleMatch(a.Title, b.Title) {
		score += 0.3
	}

	if a.Due != nil && b.Due != nil && d.timeMatch(*a.Due, *b.Due) {
		score += 0.3
	}

	return score
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}
