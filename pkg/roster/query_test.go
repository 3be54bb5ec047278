package roster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps every pipeline test clock-independent.
var fixedNow = time.Date(2025, time.August, 29, 12, 0, 0, 0, time.UTC)

func member(name string, dob time.Time, relationship string) Member {
	return Member{ID: uuid.New(), Name: name, DOB: dob, Relationship: relationship}
}

// memberAged builds a member whose whole-year age at fixedNow is exactly age.
func memberAged(name string, age int) Member {
	dob := time.Date(fixedNow.Year()-age, time.January, 15, 0, 0, 0, 0, time.UTC)
	return member(name, dob, "Relative")
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestVisibleSearch(t *testing.T) {
	members := []Member{
		memberAged("Sam", 10),
		memberAged("Samuel", 20),
		memberAged("Bea", 30),
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		rows := Visible(members, Query{Search: "sAm"}, fixedNow)
		assert.Equal(t, []string{"Sam", "Samuel"}, names(rows))
	})

	t.Run("empty search passes everyone", func(t *testing.T) {
		rows := Visible(members, Query{}, fixedNow)
		assert.Len(t, rows, 3)
	})

	t.Run("no match yields no rows", func(t *testing.T) {
		rows := Visible(members, Query{Search: "zzz"}, fixedNow)
		assert.Empty(t, rows)
	})
}

func TestVisibleFilterBoundaries(t *testing.T) {
	members := []Member{
		memberAged("Four", 4),
		memberAged("Five", 5),
		memberAged("Ten", 10),
		memberAged("Eleven", 11),
	}

	t.Run("closed range is inclusive at both ends", func(t *testing.T) {
		rows := Visible(members, Query{Filter: "5-10"}, fixedNow)
		assert.Equal(t, []string{"Five", "Ten"}, names(rows))
	})

	t.Run("open range includes min and everything above", func(t *testing.T) {
		rows := Visible(members, Query{Filter: "5-"}, fixedNow)
		assert.Equal(t, []string{"Five", "Ten", "Eleven"}, names(rows))
	})

	t.Run("malformed filter passes everyone", func(t *testing.T) {
		rows := Visible(members, Query{Filter: "teenagers"}, fixedNow)
		assert.Len(t, rows, 4)
	})

	t.Run("empty filter passes everyone", func(t *testing.T) {
		rows := Visible(members, Query{Filter: ""}, fixedNow)
		assert.Len(t, rows, 4)
	})
}

func TestVisibleSortByName(t *testing.T) {
	members := []Member{
		memberAged("Bea", 30),
		memberAged("Al", 20),
		memberAged("al", 10),
	}

	rows := Visible(members, Query{Sort: SortByName}, fixedNow)
	assert.Equal(t, []string{"Al", "al", "Bea"}, names(rows))
}

func TestVisibleSortByAge(t *testing.T) {
	members := []Member{
		memberAged("Young", 5),
		memberAged("OldFirst", 40),
		memberAged("OldSecond", 40),
		memberAged("Middle", 20),
	}

	rows := Visible(members, Query{Sort: SortByAge}, fixedNow)
	// Oldest first; the two forty-year-olds keep their insertion order
	assert.Equal(t, []string{"OldFirst", "OldSecond", "Middle", "Young"}, names(rows))
}

func TestVisibleUnsortedKeepsInsertionOrder(t *testing.T) {
	members := []Member{
		memberAged("C", 3),
		memberAged("A", 1),
		memberAged("B", 2),
	}

	rows := Visible(members, Query{}, fixedNow)
	assert.Equal(t, []string{"C", "A", "B"}, names(rows))
}

func TestVisibleIdempotent(t *testing.T) {
	members := []Member{
		memberAged("Sam", 10),
		memberAged("Bea", 30),
	}
	q := Query{Search: "a", Filter: "0-40", Sort: SortByAge}

	first := Visible(members, q, fixedNow)
	second := Visible(members, q, fixedNow)
	assert.Equal(t, first, second)
}

func TestVisibleBindsOriginalIndex(t *testing.T) {
	members := []Member{
		memberAged("Zed", 50),
		memberAged("Amy", 8),
		memberAged("Kim", 30),
	}

	rows := Visible(members, Query{Filter: "10-", Sort: SortByName}, fixedNow)
	require.Equal(t, []string{"Kim", "Zed"}, names(rows))

	// Bindings point at the unfiltered list positions and stable IDs
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, members[2].ID, rows[0].ID)
	assert.Equal(t, 0, rows[1].Index)
	assert.Equal(t, members[0].ID, rows[1].ID)
}

func TestVisibleRowContents(t *testing.T) {
	m := member("Sam", time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC), "Sibling")
	rows := Visible([]Member{m}, Query{}, fixedNow)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Sam", row.Name)
	assert.Equal(t, "6/15/2000", row.DOB)
	assert.Equal(t, "Sibling", row.Relationship)
	assert.Equal(t, 25, row.Age)
	require.Len(t, row.Units, 7)
	assert.Equal(t, "25 -------- years", row.Units[0])
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByName, ParseSortMode("name"))
	assert.Equal(t, SortByAge, ParseSortMode("age"))
	assert.Equal(t, SortNone, ParseSortMode(""))
	assert.Equal(t, SortNone, ParseSortMode("bogus"))
}
