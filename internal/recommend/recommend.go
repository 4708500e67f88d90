// Package recommend holds the small rules behind the recommended-posts
// widgets: period names, tab visibility and count formatting.
package recommend

import (
	"errors"
	"fmt"
	"strconv"
)

// Period is a short recommendation window name such as "1h"
type Period string

const (
	Period1H  Period = "1h"
	Period3H  Period = "3h"
	Period6H  Period = "6h"
	Period12H Period = "12h"
	Period24H Period = "24h"
	Period48H Period = "48h"
)

// ErrUnknownPeriod is returned for names outside the fixed set
var ErrUnknownPeriod = errors.New("unknown period")

var fileNames = map[Period]string{
	Period1H:  "1hour",
	Period3H:  "3hours",
	Period6H:  "6hours",
	Period12H: "12hours",
	Period24H: "24hours",
	Period48H: "48hours",
}

// Periods lists every period in ascending order
func Periods() []Period {
	return []Period{Period1H, Period3H, Period6H, Period12H, Period24H, Period48H}
}

// ParsePeriod accepts both the short ("6h") and long ("6hours") names
func ParsePeriod(s string) (Period, error) {
	if _, ok := fileNames[Period(s)]; ok {
		return Period(s), nil
	}
	for p, name := range fileNames {
		if name == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// FileName is the long name used for static trend files ("1h" -> "1hour")
func (p Period) FileName() string {
	return fileNames[p]
}

// Valid reports whether p is one of the fixed periods
func (p Period) Valid() bool {
	_, ok := fileNames[p]
	return ok
}

// TabVisibility says which short tabs to show and which one opens first
type TabVisibility struct {
	Show1H     bool
	Show3H     bool
	DefaultTab Period
}

// TabVisibilityAt applies the overnight rules for the given local hour:
// 00-06 hides 1H and 3H, 06-09 hides 1H, otherwise everything is shown.
func TabVisibilityAt(hour int) TabVisibility {
	switch {
	case hour >= 0 && hour < 6:
		return TabVisibility{Show1H: false, Show3H: false, DefaultTab: Period6H}
	case hour >= 6 && hour < 9:
		return TabVisibility{Show1H: false, Show3H: true, DefaultTab: Period3H}
	default:
		return TabVisibility{Show1H: true, Show3H: true, DefaultTab: Period1H}
	}
}

// BadgeStep buckets a recommend count into steps 1..4
func BadgeStep(recommendCount int) int {
	switch {
	case recommendCount <= 15:
		return 1
	case recommendCount <= 25:
		return 2
	case recommendCount <= 50:
		return 3
	default:
		return 4
	}
}

// FormatNumber abbreviates large counts with k/m/b and one decimal
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000_000, 'f', 1, 64) + "b"
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "m"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}
