// Package mapper turns loosely typed sheet rows into domain records. Rows
// that cannot produce a complete record are dropped, never half-filled.
package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Drop reasons.
const (
	ReasonHidden      = "hidden"
	ReasonMissingID   = "missing id"
	ReasonMissingName = "missing title"
	ReasonMissingKey  = "missing key"
	ReasonBadCategory = "unrecognized category"
)

// Dropped describes one skipped row. Line is the 1-based sheet line
// (the header is line 1).
type Dropped struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report collects what happened to each row of one table.
type Report struct {
	Kept    int       `json:"kept"`
	Dropped []Dropped `json:"dropped,omitempty"`
}

func (r *Report) drop(i int, reason string) {
	if r == nil {
		return
	}
	r.Dropped = append(r.Dropped, Dropped{Line: i + 2, Reason: reason})
}

func (r *Report) keep() {
	if r != nil {
		r.Kept++
	}
}

func (r *Report) String() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("kept=%d dropped=%d", r.Kept, len(r.Dropped))
}

// isHidden reports the editors' "TRUE" sentinel, case-insensitively.
func isHidden(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// parseInt never fails: anything that is not an integer (after trimming, and
// after dropping a fractional part) yields def. Out of range values saturate.
func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		switch {
		case f >= math.MaxInt:
			return math.MaxInt
		case f <= math.MinInt:
			return math.MinInt
		}
		return int(f)
	}
	return def
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
