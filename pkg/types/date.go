// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateRange is an inclusive span of years. Negative years are BCE; there is
// no year zero. A single year has Start == End.
type DateRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// IsZero reports whether the range is unset.
func (d DateRange) IsZero() bool {
	return d.Start == 0 && d.End == 0
}

// Overlaps reports whether d shares at least one year with [from, to].
func (d DateRange) Overlaps(from, to int) bool {
	return d.Start <= to && d.End >= from
}

// String renders the range in the same style ParseDate accepts.
func (d DateRange) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Start == d.End {
		return FormatYear(d.Start)
	}
	if d.Start < 0 && d.End < 0 {
		return fmt.Sprintf("%d-%d BCE", -d.Start, -d.End)
	}
	return FormatYear(d.Start) + "-" + FormatYear(d.End)
}

// FormatYear renders a year with a BCE suffix when negative.
func FormatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("%d BCE", -y)
	}
	return strconv.Itoa(y)
}

var (
	centuryRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)\s+century(?:\s+(bce|bc|ce|ad))?$`)
	spanRe    = regexp.MustCompile(`^(\d{1,4})\s*(bce|bc|ce|ad)?\s*(?:-|–|—|to)\s*(\d{1,4})\s*(bce|bc|ce|ad)?$`)
	yearRe    = regexp.MustCompile(`^(\d{1,4})\s*(bce|bc|ce|ad)?$`)
)

// ParseDate parses a display date into a DateRange. Accepted forms include
// "1651", "c. 375 BCE", "1781-1787", "470-399 BCE", "5th century BCE" and
// "ca. 1200". Circa markers are ignored.
func ParseDate(s string) (DateRange, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, ".", "")
	for _, prefix := range []string{"circa ", "ca ", "c ", "c"} {
		if strings.HasPrefix(norm, prefix) {
			norm = strings.TrimSpace(strings.TrimPrefix(norm, prefix))
			break
		}
	}
	norm = strings.Join(strings.Fields(norm), " ")

	if norm == "" {
		return DateRange{}, fmt.Errorf("empty date")
	}

	if m := centuryRe.FindStringSubmatch(norm); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n == 0 {
			return DateRange{}, fmt.Errorf("invalid century in %q", s)
		}
		if isBCE(m[2]) {
			return DateRange{Start: -n * 100, End: -(n-1)*100 - 1}, nil
		}
		return DateRange{Start: (n-1)*100 + 1, End: n * 100}, nil
	}

	if m := spanRe.FindStringSubmatch(norm); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[3])
		if m[2] == "" && m[4] == "" && len(m[3]) < len(m[1]) {
			b = expandShortYear(m[1], m[3])
		}
		// A trailing era applies to both ends: "470-399 BCE".
		startBCE := isBCE(m[2]) || (m[2] == "" && isBCE(m[4]))
		endBCE := isBCE(m[4])
		if startBCE {
			a = -a
		}
		if endBCE {
			b = -b
		}
		if a > b {
			return DateRange{}, fmt.Errorf("date span %q ends before it starts", s)
		}
		return DateRange{Start: a, End: b}, nil
	}

	if m := yearRe.FindStringSubmatch(norm); m != nil {
		y, _ := strconv.Atoi(m[1])
		if isBCE(m[2]) {
			y = -y
		}
		return DateRange{Start: y, End: y}, nil
	}

	return DateRange{}, fmt.Errorf("unrecognized date %q", s)
}

// expandShortYear completes an abbreviated span end ("1781-87") with the
// leading digits of the start, rolling into the next block when the result
// would fall before the start ("1798-05" ends in 1805).
func expandShortYear(start, end string) int {
	a, _ := strconv.Atoi(start)
	b, _ := strconv.Atoi(start[:len(start)-len(end)] + end)
	if b < a {
		step := 1
		for range end {
			step *= 10
		}
		b += step
	}
	return b
}

func isBCE(era string) bool {
	return era == "bce" || era == "bc"
}
