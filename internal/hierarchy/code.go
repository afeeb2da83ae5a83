// Package hierarchy decodes structured account codes into hierarchy levels
// and family keys, and evaluates per-row classification status.
package hierarchy

import (
	"fmt"
	"strings"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
)

// Level is an account's position in the 4-level accounting hierarchy,
// ordered by specificity: 1 is the coarsest, 4 the finest.
type Level int

// Hierarchy levels.
const (
	LevelGrandTotal  Level = 1
	LevelFamilyRoot  Level = 2
	LevelSubcategory Level = 3
	LevelDetail      Level = 4
)

func (l Level) String() string {
	switch l {
	case LevelGrandTotal:
		return "grand-total"
	case LevelFamilyRoot:
		return "family-root"
	case LevelSubcategory:
		return "subcategory"
	case LevelDetail:
		return "detail"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Fixed segment widths of the account code schema. Codes with other widths
// are rejected at parse time rather than silently mis-leveled; ingestion is
// expected to normalize codes before they reach the hierarchy logic.
var segmentWidths = [4]int{4, 4, 3, 3}

// familyKeyLen covers segment 1, the dash, and segment 2.
const familyKeyLen = 9

// Code is a parsed account code of the form SEGMENT1-SEGMENT2-SEGMENT3-SEGMENT4.
type Code struct {
	raw      string
	segments [4]string
}

// ParseCode validates and decodes a raw account code. Codes that do not
// match the fixed 4-4-3-3 dash-delimited schema fail with ErrMalformedCode.
func ParseCode(raw string) (Code, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != len(segmentWidths) {
		return Code{}, fmt.Errorf("%w: %q has %d segments, want %d",
			common.ErrMalformedCode, raw, len(parts), len(segmentWidths))
	}

	var code Code
	for i, part := range parts {
		if len(part) != segmentWidths[i] {
			return Code{}, fmt.Errorf("%w: %q segment %d has width %d, want %d",
				common.ErrMalformedCode, raw, i+1, len(part), segmentWidths[i])
		}
		code.segments[i] = part
	}
	code.raw = raw

	return code, nil
}

func (c Code) String() string {
	return c.raw
}

// Segment returns the 1-based code segment.
func (c Code) Segment(n int) string {
	return c.segments[n-1]
}

// Level derives the hierarchy level from the code's zero-placeholder
// segments. Rules are tested coarsest-first so a grand-total code is never
// mistaken for a family root.
func (c Code) Level() Level {
	switch {
	case isPlaceholder(c.segments[1]) && isPlaceholder(c.segments[2]) && isPlaceholder(c.segments[3]):
		return LevelGrandTotal
	case isPlaceholder(c.segments[2]) && isPlaceholder(c.segments[3]):
		return LevelFamilyRoot
	case isPlaceholder(c.segments[3]):
		return LevelSubcategory
	default:
		return LevelDetail
	}
}

// FamilyKey returns the grouping key shared by all lineal descendants of
// the same family root: the first two segments of the code. Segments 3 and
// 4 never affect it.
func (c Code) FamilyKey() string {
	return c.raw[:familyKeyLen]
}

// isPlaceholder reports whether a segment is an all-zero placeholder.
func isPlaceholder(segment string) bool {
	for i := 0; i < len(segment); i++ {
		if segment[i] != '0' {
			return false
		}
	}
	return true
}
