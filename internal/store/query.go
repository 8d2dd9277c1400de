package store

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plantpulse/internal/plant"
)

// SortKey selects which field a query orders by.
type SortKey int

const (
	SortByName SortKey = iota
	SortByCareLevel
	SortByNextWatering
)

func (k SortKey) String() string {
	switch k {
	case SortByCareLevel:
		return "care level"
	case SortByNextWatering:
		return "next watering"
	}
	return "name"
}

// Query describes one pass of the filter → sort → search pipeline.
// The zero value lists everything sorted by name ascending.
type Query struct {
	// Search is matched case-insensitively as a substring of name or
	// category; empty matches all.
	Search string
	// Owner, when non-empty, restricts results to records owned by that
	// email.
	Owner string
	Sort  SortKey
	Desc  bool
}

var nameCollator = collate.New(language.English, collate.Loose)

// RunQuery applies q to a snapshot and returns the result in display order.
// It is pure and synchronous; callers run it on every keystroke. The input
// slice is not modified.
func RunQuery(snapshot []plant.Plant, q Query) []plant.Plant {
	out := make([]plant.Plant, 0, len(snapshot))
	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range snapshot {
		if q.Owner != "" && p.OwnerEmail != q.Owner {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		out = append(out, p)
	}

	// Stable sort so ties keep filter-stage order; Desc reverses the
	// comparator among comparable records while records without a care
	// level or watering date stay last in both directions.
	sort.SliceStable(out, func(i, j int) bool {
		return lessPlants(out[i], out[j], q.Sort, q.Desc)
	})
	return out
}

func lessPlants(a, b plant.Plant, key SortKey, desc bool) bool {
	switch key {
	case SortByCareLevel:
		ra, rb := plant.CareLevelRank(a.CareLevel), plant.CareLevelRank(b.CareLevel)
		if ra == rb {
			return false
		}
		// Unranked levels always sort after ranked ones.
		if ra == 4 || rb == 4 {
			return ra < rb
		}
		if desc {
			return ra > rb
		}
		return ra < rb

	case SortByNextWatering:
		if a.NextWatering == nil || b.NextWatering == nil {
			// Dated records before unset, regardless of direction.
			return a.NextWatering != nil && b.NextWatering == nil
		}
		if a.NextWatering.Equal(*b.NextWatering) {
			return false
		}
		if desc {
			return a.NextWatering.After(*b.NextWatering)
		}
		return a.NextWatering.Before(*b.NextWatering)

	default:
		c := nameCollator.CompareString(a.Name, b.Name)
		if c == 0 {
			return false
		}
		if desc {
			return c > 0
		}
		return c < 0
	}
}

// CountPending returns how many records in the snapshot are due for
// watering as of now.
func CountPending(snapshot []plant.Plant, now time.Time) int {
	n := 0
	for _, p := range snapshot {
		if plant.Pending(p.NextWatering, now) {
			n++
		}
	}
	return n
}
