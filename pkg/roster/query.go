package roster

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the ordering of the visible rows.
type SortMode int

const (
	// SortNone keeps insertion order
	SortNone SortMode = iota
	// SortByName orders by name, collation-aware ascending
	SortByName
	// SortByAge orders by whole-year age, oldest first
	SortByAge
)

// ParseSortMode maps a selector value to a SortMode. Unknown values mean no
// sorting.
func ParseSortMode(value string) SortMode {
	switch value {
	case "name":
		return SortByName
	case "age":
		return SortByAge
	default:
		return SortNone
	}
}

// Query is the full input to the render pipeline besides the list itself.
type Query struct {
	// Search is matched case-insensitively against member names
	Search string

	// Filter is an age range encoded as "min-max" or "min-" (open-ended).
	// Empty passes everyone.
	Filter string

	// Sort selects the row ordering
	Sort SortMode
}

// Row is the view-model for one visible table row. Index is the member's
// position in the unfiltered list; ID is the stable identity that edit and
// delete actions bind to.
type Row struct {
	ID           uuid.UUID
	Index        int
	Name         string
	DOB          string
	Relationship string
	Age          int
	Days         int64
	Units        []string
}

// ageRange is a parsed filter selection.
type ageRange struct {
	min    int
	max    int
	hasMax bool
}

// parseAgeRange parses "min-max" or "min-". The second result is false when
// the value does not encode a range, in which case no filtering applies.
func parseAgeRange(value string) (ageRange, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ageRange{}, false
	}

	minPart, maxPart, found := strings.Cut(value, "-")
	if !found {
		return ageRange{}, false
	}

	min, err := strconv.Atoi(strings.TrimSpace(minPart))
	if err != nil {
		return ageRange{}, false
	}

	r := ageRange{min: min}
	if max, err := strconv.Atoi(strings.TrimSpace(maxPart)); err == nil {
		r.max = max
		r.hasMax = true
	}
	return r, true
}

// contains reports whether an age falls in the range, both ends inclusive.
func (r ageRange) contains(age int) bool {
	if age < r.min {
		return false
	}
	return !r.hasMax || age <= r.max
}

// Visible runs the fixed search -> filter -> sort pipeline over the member
// list and materializes the row view-models. It is a pure function of its
// inputs; calling it twice with the same arguments yields identical rows.
func Visible(members []Member, q Query, now time.Time) []Row {
	rows := make([]Row, 0, len(members))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	ageFilter, filtered := parseAgeRange(q.Filter)

	for i, m := range members {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}

		breakdown := Elapsed(m.DOB, now)
		if filtered && !ageFilter.contains(breakdown.Years) {
			continue
		}

		rows = append(rows, Row{
			ID:           m.ID,
			Index:        i,
			Name:         m.Name,
			DOB:          m.DOB.Format("1/2/2006"),
			Relationship: m.Relationship,
			Age:          breakdown.Years,
			Days:         breakdown.Days,
			Units:        breakdown.Units(),
		})
	}

	switch q.Sort {
	case SortByName:
		c := collate.New(language.Und, collate.Loose)
		slices.SortStableFunc(rows, func(a, b Row) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortByAge:
		// Oldest first; stable so ties keep insertion order
		slices.SortStableFunc(rows, func(a, b Row) int {
			return b.Age - a.Age
		})
	}

	return rows
}
