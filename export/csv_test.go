package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"linkedin-scraper/models"
)

func sampleProfiles() []models.Profile {
	return []models.Profile{
		{
			FirstName:      "John",
			LastName:       "Doe",
			FullName:       "John Doe",
			Headline:       "Engineer at Google",
			CurrentCompany: "Google",
			Location:       "London",
			ProfileURL:     "https://www.linkedin.com/in/john",
			IsOpenToWork:   true,
			ScrapedAt:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			FullName:   "Jane Smith",
			ProfileURL: "https://www.linkedin.com/in/jane",
			ScrapedAt:  time.Date(2025, 3, 14, 9, 1, 0, 0, time.UTC),
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	return records
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCSV(sampleProfiles(), dir, "test.csv")
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if filepath.Base(path) != "test.csv" {
		t.Errorf("path = %q", path)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2 profiles", len(records))
	}

	for i, h := range models.ExportHeaders {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	if records[1][2] != "John Doe" || records[1][7] != "true" {
		t.Errorf("first data row = %v", records[1])
	}
	if records[2][7] != "false" {
		t.Errorf("second data row open_to_work = %q, want false", records[2][7])
	}
}

func TestWriteCSVGeneratedName(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCSV(sampleProfiles(), dir, "")
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	base := filepath.Base(path)
	if matched, _ := filepath.Match("linkedin_opentowork_*.csv", base); !matched {
		t.Errorf("generated filename = %q", base)
	}
}

func TestAppendCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incremental.csv")
	profiles := sampleProfiles()

	for i := range profiles {
		if err := AppendCSV(&profiles[i], path); err != nil {
			t.Fatalf("AppendCSV() error = %v", err)
		}
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header written once + 2 profiles", len(records))
	}
	if records[0][0] != "first_name" {
		t.Errorf("header row missing, got %v", records[0])
	}
	if records[2][2] != "Jane Smith" {
		t.Errorf("second appended row = %v", records[2])
	}
}
