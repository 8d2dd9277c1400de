// Package plant holds the plant record model and the derived watering
// schedule computation.
package plant

import "time"

// Plant is a single plant record as held in the working set. ID is assigned
// by the remote store and immutable after creation. Optional date fields are
// nil when the record has no value for them.
type Plant struct {
	ID           string
	Name         string
	Category     string
	Description  string
	Image        string
	CareLevel    string // Easy, Moderate, Difficult
	Sunlight     string
	HealthStatus string
	CareTips     string

	// WateringFrequencyDays is the interval between waterings; 0 means the
	// schedule is unknown.
	WateringFrequencyDays int

	LastWatered  *time.Time
	NextWatering *time.Time

	OwnerEmail string
	OwnerName  string
}

// Care levels in rank order. Anything else sorts after these.
const (
	CareLevelEasy      = "Easy"
	CareLevelModerate  = "Moderate"
	CareLevelDifficult = "Difficult"
)

// CareLevelRank maps a care level to its sort rank; unrecognized levels
// rank after all known ones.
func CareLevelRank(level string) int {
	switch level {
	case CareLevelEasy:
		return 1
	case CareLevelModerate:
		return 2
	case CareLevelDifficult:
		return 3
	}
	return 4
}

// Patch is a partial update to a plant. Nil fields are left untouched by
// Apply. Owner identity and ID are not patchable.
type Patch struct {
	Name                  *string
	Category              *string
	Description           *string
	Image                 *string
	CareLevel             *string
	Sunlight              *string
	HealthStatus          *string
	CareTips              *string
	WateringFrequencyDays *int
	LastWatered           *time.Time
	NextWatering          *time.Time
}

// Apply merges the patch into a copy of p and returns the result.
func (pt Patch) Apply(p Plant) Plant {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Image != nil {
		p.Image = *pt.Image
	}
	if pt.CareLevel != nil {
		p.CareLevel = *pt.CareLevel
	}
	if pt.Sunlight != nil {
		p.Sunlight = *pt.Sunlight
	}
	if pt.HealthStatus != nil {
		p.HealthStatus = *pt.HealthStatus
	}
	if pt.CareTips != nil {
		p.CareTips = *pt.CareTips
	}
	if pt.WateringFrequencyDays != nil {
		p.WateringFrequencyDays = *pt.WateringFrequencyDays
	}
	if pt.LastWatered != nil {
		t := *pt.LastWatered
		p.LastWatered = &t
	}
	if pt.NextWatering != nil {
		t := *pt.NextWatering
		p.NextWatering = &t
	}
	return p
}
