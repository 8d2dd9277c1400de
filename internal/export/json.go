package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"plantpulse/internal/plant"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Plants     []jsonPlant `json:"plants"`
}

type jsonPlant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	CareLevel    string `json:"care_level,omitempty"`
	WateringDays int    `json:"watering_every_days,omitempty"`
	LastWatered  string `json:"last_watered,omitempty"`
	NextWatering string `json:"next_watering,omitempty"`
	Status       string `json:"status"`
	OwnerEmail   string `json:"owner_email,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
}

func ToJSON(plants []plant.Plant, now time.Time, path string) error {
	out := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(plants),
	}

	for _, p := range plants {
		out.Plants = append(out.Plants, jsonPlant{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			CareLevel:    p.CareLevel,
			WateringDays: p.WateringFrequencyDays,
			LastWatered:  formatDate(p.LastWatered),
			NextWatering: formatDate(p.NextWatering),
			Status:       plant.ComputeSchedule(p.NextWatering, now).String(),
			OwnerEmail:   p.OwnerEmail,
			OwnerName:    p.OwnerName,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
