package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"plantpulse/internal/plant"
)

func ToCSV(plants []plant.Plant, now time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{
		"ID", "Name", "Category", "Care Level", "Watering Every (days)",
		"Last Watered", "Next Watering", "Status", "Owner",
	}); err != nil {
		return err
	}

	for _, p := range plants {
		freq := ""
		if p.WateringFrequencyDays > 0 {
			freq = fmt.Sprintf("%d", p.WateringFrequencyDays)
		}
		row := []string{
			p.ID,
			p.Name,
			p.Category,
			p.CareLevel,
			freq,
			formatDate(p.LastWatered),
			formatDate(p.NextWatering),
			plant.ComputeSchedule(p.NextWatering, now).String(),
			p.OwnerEmail,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
