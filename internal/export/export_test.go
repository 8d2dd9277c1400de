package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"plantpulse/internal/plant"
)

func samplePlants() []plant.Plant {
	next := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	return []plant.Plant{
		{
			ID:                    "p1",
			Name:                  "Fern",
			Category:              "Indoor",
			CareLevel:             plant.CareLevelEasy,
			WateringFrequencyDays: 7,
			LastWatered:           &last,
			NextWatering:          &next,
			OwnerEmail:            "ana@example.com",
			OwnerName:             "Ana",
		},
		{ID: "p2", Name: "Cactus", Category: "Succulent"},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	if err := ToCSV(samplePlants(), now, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][7] != "Status" {
		t.Fatalf("header = %v", rows[0])
	}

	fern := rows[1]
	if fern[1] != "Fern" || fern[4] != "7" || fern[6] != "2026-03-14" {
		t.Fatalf("fern row = %v", fern)
	}
	// Next watering was two days before "now": overdue.
	if fern[7] != "overdue" {
		t.Fatalf("status = %q, want overdue", fern[7])
	}

	cactus := rows[2]
	if cactus[4] != "" || cactus[5] != "" || cactus[6] != "" {
		t.Fatalf("unset fields should be empty: %v", cactus)
	}
	if cactus[7] != "no schedule" {
		t.Fatalf("status = %q, want no schedule", cactus[7])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(nil, time.Now(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty export should still have the header, got %d lines", len(lines))
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	if err := ToJSON(samplePlants(), now, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Plants     []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"plants"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if out.Count != 2 || len(out.Plants) != 2 {
		t.Fatalf("count = %d, plants = %d", out.Count, len(out.Plants))
	}
	if out.ExportedAt != "2026-03-16T12:00:00Z" {
		t.Fatalf("exported_at = %q", out.ExportedAt)
	}
	if out.Plants[0].Status != "overdue" {
		t.Fatalf("status = %q", out.Plants[0].Status)
	}
	if out.Plants[1].Status != "no schedule" {
		t.Fatalf("status = %q", out.Plants[1].Status)
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, time.Now(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	if err == nil {
		t.Fatal("unwritable path should error")
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(nil); got != "" {
		t.Fatalf("formatDate(nil) = %q", got)
	}
	d := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	if got := formatDate(&d); got != "2026-03-14" {
		t.Fatalf("formatDate = %q", got)
	}
}
