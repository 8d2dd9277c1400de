package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"plantpulse/internal/plant"
)

// wirePlant is the JSON shape of a plant record on the wire. The server
// uses `_id` and `userEmail`/`userName`; dates travel as strings. ID is
// omitted when empty so PUT and POST bodies never carry it.
type wirePlant struct {
	ID           string        `json:"_id,omitempty"`
	Name         string        `json:"name"`
	Category     string        `json:"category,omitempty"`
	Description  string        `json:"description,omitempty"`
	Image        string        `json:"image,omitempty"`
	CareLevel    string        `json:"careLevel,omitempty"`
	Sunlight     string        `json:"sunlight,omitempty"`
	HealthStatus string        `json:"healthStatus,omitempty"`
	CareTips     string        `json:"careTips,omitempty"`
	Watering     wireFrequency `json:"wateringFrequency,omitempty"`
	LastWatered  wireDate      `json:"lastWatered,omitempty"`
	NextWatering wireDate      `json:"nextWatering,omitempty"`
	OwnerEmail   string        `json:"userEmail,omitempty"`
	OwnerName    string        `json:"userName,omitempty"`
}

func fromPlant(p plant.Plant) wirePlant {
	return wirePlant{
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		Image:        p.Image,
		CareLevel:    p.CareLevel,
		Sunlight:     p.Sunlight,
		HealthStatus: p.HealthStatus,
		CareTips:     p.CareTips,
		Watering:     wireFrequency(p.WateringFrequencyDays),
		LastWatered:  wireDate{p.LastWatered},
		NextWatering: wireDate{p.NextWatering},
		OwnerEmail:   p.OwnerEmail,
		OwnerName:    p.OwnerName,
	}
}

func (w wirePlant) toPlant() plant.Plant {
	return plant.Plant{
		ID:                    w.ID,
		Name:                  w.Name,
		Category:              w.Category,
		Description:           w.Description,
		Image:                 w.Image,
		CareLevel:             w.CareLevel,
		Sunlight:              w.Sunlight,
		HealthStatus:          w.HealthStatus,
		CareTips:              w.CareTips,
		WateringFrequencyDays: int(w.Watering),
		LastWatered:           w.LastWatered.t,
		NextWatering:          w.NextWatering.t,
		OwnerEmail:            w.OwnerEmail,
		OwnerName:             w.OwnerName,
	}
}

// wireFrequency tolerates the mixed historical encodings of
// wateringFrequency: a number, a numeric string, or free text like
// "3 days". The leading integer wins; anything else decodes to 0 (unknown).
type wireFrequency int

func (f wireFrequency) MarshalJSON() ([]byte, error) {
	if f == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(f))), nil
}

func (f *wireFrequency) UnmarshalJSON(data []byte) error {
	var n int
	if json.Unmarshal(data, &n) == nil {
		*f = wireFrequency(n)
		return nil
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		*f = wireFrequency(leadingInt(s))
		return nil
	}
	*f = 0
	return nil
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// wireDate is a calendar date on the wire. The HTML date inputs that fed
// the store produce "2006-01-02"; older records carry full RFC 3339
// timestamps. Unparsable values decode to nil rather than failing the whole
// record.
type wireDate struct {
	t *time.Time
}

const dateLayout = "2006-01-02"

func (d wireDate) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(dateLayout))
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	d.t = nil
	var s string
	if json.Unmarshal(data, &s) != nil || s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			d.t = &utc
			return nil
		}
	}
	return nil
}
