// Package recurrence turns RRULE-style recurrence strings into short
// human-readable labels and computes occurrence dates.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
)

var dayNames = map[string]string{
	"SU": "Sunday",
	"MO": "Monday",
	"TU": "Tuesday",
	"WE": "Wednesday",
	"TH": "Thursday",
	"FR": "Friday",
	"SA": "Saturday",
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Summarize converts a semicolon-separated key=value recurrence rule into a
// short label. It never fails: unrecognized input degrades to "Custom" and an
// empty rule yields an empty label. The rule is pattern-matched, never
// validated or mutated.
func Summarize(rule string) string {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return ""
	}

	parts := parseRule(rule)
	freq := parts["FREQ"]
	interval, _ := strconv.Atoi(parts["INTERVAL"])

	switch freq {
	case "DAILY":
		return "Daily"

	case "WEEKLY":
		if interval == 2 {
			return "Every 2 weeks"
		}
		if byday, ok := parts["BYDAY"]; ok {
			if byday == "MO,TU,WE,TH,FR" {
				return "Weekdays"
			}
			days := strings.Split(byday, ",")
			if len(days) == 1 {
				name := dayNames[days[0]]
				if name == "" {
					name = days[0]
				}
				return "Weekly on " + name
			}
		}
		return "Weekly"

	case "MONTHLY":
		if interval == 3 {
			return "Every 3 months"
		}
		if md, ok := parts["BYMONTHDAY"]; ok {
			if n, err := strconv.Atoi(md); err == nil {
				return fmt.Sprintf("Monthly on the %d%s", n, OrdinalSuffix(n))
			}
		}
		if _, ok := parts["BYDAY"]; ok {
			return "Monthly (by weekday)"
		}
		return "Monthly"

	case "YEARLY":
		month, haveMonth := parts["BYMONTH"]
		md, haveDay := parts["BYMONTHDAY"]
		if haveMonth && haveDay {
			m, merr := strconv.Atoi(month)
			d, derr := strconv.Atoi(md)
			if merr == nil && derr == nil && m >= 1 && m <= 12 {
				return fmt.Sprintf("Yearly on %s %d%s", monthNames[m-1], d, OrdinalSuffix(d))
			}
		}
		return "Yearly"
	}

	// Count/until annotations only apply here, in the fallback branch; a
	// recognized frequency above never receives them.
	label := "Custom"
	if count, ok := parts["COUNT"]; ok {
		if n, err := strconv.Atoi(count); err == nil {
			return fmt.Sprintf("%s (%d times)", label, n)
		}
	}
	if until, ok := parts["UNTIL"]; ok && len(until) >= 8 {
		return fmt.Sprintf("%s (until %s-%s-%s)", label, until[0:4], until[4:6], until[6:8])
	}
	return label
}

// OrdinalSuffix returns the English ordinal suffix for n: 1st, 2nd, 3rd, 4th,
// with the 11th-13th exception.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if m := n % 100; m >= 11 && m <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func parseRule(rule string) map[string]string {
	parts := make(map[string]string)
	for _, kv := range strings.Split(rule, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		parts[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return parts
}
