package suggest

import (
	"fmt"
	"reflect"
	"testing"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		corpus []string
		want   []string
	}{
		{
			"substring match preserves order",
			"proj",
			[]string{"project-a", "project-b", "other"},
			[]string{"project-a", "project-b"},
		},
		{
			"case insensitive",
			"WORK",
			[]string{"work", "Homework", "play"},
			[]string{"work", "Homework"},
		},
		{
			"excludes earlier tokens",
			"a, proj",
			[]string{"a", "project-a"},
			[]string{"project-a"},
		},
		{
			"earlier token exclusion is case insensitive",
			"Work, o",
			[]string{"work", "home", "office"},
			[]string{"home", "office"},
		},
		{
			"empty buffer yields nothing",
			"",
			[]string{"a", "b"},
			nil,
		},
		{
			"trailing comma yields nothing",
			"work, ",
			[]string{"work", "home"},
			nil,
		},
		{
			"no matches",
			"zzz",
			[]string{"a", "b"},
			nil,
		},
		{
			"empty corpus",
			"x",
			nil,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.buffer, tt.corpus)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest(%q) = %v, want %v", tt.buffer, got, tt.want)
			}
		})
	}
}

func TestSuggestCap(t *testing.T) {
	corpus := make([]string, 25)
	for i := range corpus {
		corpus[i] = fmt.Sprintf("item-%02d", i)
	}
	got := Suggest("item", corpus)
	if len(got) != MaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", MaxSuggestions, len(got))
	}
	// first ten in corpus order
	for i, s := range got {
		want := fmt.Sprintf("item-%02d", i)
		if s != want {
			t.Errorf("suggestion %d = %q, want %q", i, s, want)
		}
	}
}

func TestSuggestNCustomLimit(t *testing.T) {
	corpus := make([]string, 12)
	for i := range corpus {
		corpus[i] = fmt.Sprintf("work-%02d", i)
	}

	got := SuggestN("work", corpus, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	for i, s := range got {
		want := fmt.Sprintf("work-%02d", i)
		if s != want {
			t.Errorf("suggestion %d = %q, want %q", i, s, want)
		}
	}

	// non-positive limit falls back to the default cap
	if got := SuggestN("work", corpus, 0); len(got) != MaxSuggestions {
		t.Errorf("limit 0: expected %d suggestions, got %d", MaxSuggestions, len(got))
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		buffer string
		chosen string
		want   string
	}{
		{"wo, pro", "project-a", "wo, project-a, "},
		{"pro", "project-a", "project-a, "},
		{"", "work", "work, "},
		{"a, b, c", "chore", "a, b, chore, "},
	}
	for _, tt := range tests {
		if got := Accept(tt.buffer, tt.chosen); got != tt.want {
			t.Errorf("Accept(%q, %q) = %q, want %q", tt.buffer, tt.chosen, got, tt.want)
		}
	}
}

func TestTrackerLatestWins(t *testing.T) {
	var tr Tracker
	first := tr.Next()
	second := tr.Next()

	if tr.Current(first) {
		t.Error("superseded lookup should not be current")
	}
	if !tr.Current(second) {
		t.Error("most recent lookup should be current")
	}
	if tr.Latest() != second {
		t.Errorf("Latest() = %d, want %d", tr.Latest(), second)
	}
}
