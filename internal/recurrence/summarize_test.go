package recurrence

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"daily", "FREQ=DAILY", "Daily"},
		{"daily ignores byday", "FREQ=DAILY;BYDAY=MO", "Daily"},
		{"weekly plain", "FREQ=WEEKLY", "Weekly"},
		{"biweekly", "FREQ=WEEKLY;INTERVAL=2", "Every 2 weeks"},
		{"biweekly wins over byday", "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO", "Every 2 weeks"},
		{"weekdays", "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", "Weekdays"},
		{"weekly single day", "FREQ=WEEKLY;BYDAY=TH", "Weekly on Thursday"},
		{"weekly unknown day passes through", "FREQ=WEEKLY;BYDAY=XX", "Weekly on XX"},
		{"weekly two days falls back", "FREQ=WEEKLY;BYDAY=MO,WE", "Weekly"},
		{"monthly plain", "FREQ=MONTHLY", "Monthly"},
		{"quarterly", "FREQ=MONTHLY;INTERVAL=3", "Every 3 months"},
		{"monthly on 3rd", "FREQ=MONTHLY;BYMONTHDAY=3", "Monthly on the 3rd"},
		{"monthly on 11th", "FREQ=MONTHLY;BYMONTHDAY=11", "Monthly on the 11th"},
		{"monthly on 22nd", "FREQ=MONTHLY;BYMONTHDAY=22", "Monthly on the 22nd"},
		{"monthly by weekday", "FREQ=MONTHLY;BYDAY=2TU", "Monthly (by weekday)"},
		{"yearly plain", "FREQ=YEARLY", "Yearly"},
		{"yearly with date", "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", "Yearly on December 25th"},
		{"yearly on first", "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1", "Yearly on January 1st"},
		{"yearly month only", "FREQ=YEARLY;BYMONTH=6", "Yearly"},
		{"unknown freq", "FREQ=HOURLY", "Custom"},
		{"garbage", "FOO=BAR", "Custom"},
		{"custom with count", "FOO=BAR;COUNT=5", "Custom (5 times)"},
		{"custom with until", "FOO=BAR;UNTIL=20251231", "Custom (until 2025-12-31)"},
		{"count beats until", "FOO=BAR;COUNT=2;UNTIL=20251231", "Custom (2 times)"},
		{"order independent", "BYDAY=MO,TU,WE,TH,FR;FREQ=WEEKLY", "Weekdays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.rule); got != tt.want {
				t.Errorf("Summarize(%q) = %q, want %q", tt.rule, got, tt.want)
			}
		})
	}
}

// A recognized frequency never receives count/until annotations; only the
// Custom fallback does.
func TestSummarizeSuffixOnlyOnFallback(t *testing.T) {
	tests := []struct {
		rule string
		want string
	}{
		{"FREQ=DAILY;COUNT=10", "Daily"},
		{"FREQ=WEEKLY;UNTIL=20260101", "Weekly"},
		{"FREQ=MONTHLY;BYMONTHDAY=1;COUNT=3", "Monthly on the 1st"},
		{"FREQ=YEARLY;UNTIL=20300101", "Yearly"},
	}
	for _, tt := range tests {
		if got := Summarize(tt.rule); got != tt.want {
			t.Errorf("Summarize(%q) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "st"}, {2, "nd"}, {3, "rd"}, {4, "th"},
		{11, "th"}, {12, "th"}, {13, "th"},
		{21, "st"}, {22, "nd"}, {23, "rd"}, {24, "th"},
		{100, "th"}, {101, "st"}, {111, "th"}, {112, "th"}, {113, "th"},
		{121, "st"}, {0, "th"},
	}
	for _, tt := range tests {
		if got := OrdinalSuffix(tt.n); got != tt.want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
