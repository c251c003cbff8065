package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkedin-scraper/logger"
	"linkedin-scraper/models"
)

// WriteCSV writes profiles to a timestamped CSV file in outputDir and
// returns the file path. Pass filename to override the generated name.
func WriteCSV(profiles []models.Profile, outputDir, filename string) (string, error) {
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = fmt.Sprintf("linkedin_opentowork_%s.csv", timestamp)
	}
	path := filepath.Join(outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.ExportHeaders); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range profiles {
		if err := w.Write(profiles[i].ToRow()); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	logger.Get().Infof("Exported %d profiles to %s", len(profiles), path)
	return path, nil
}

// AppendCSV appends one profile to an existing CSV file, creating it with
// a header row first if needed. Useful for incremental export while the
// traversal is still running.
func AppendCSV(profile *models.Profile, path string) error {
	_, statErr := os.Stat(path)
	fileExists := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !fileExists {
		if err := w.Write(models.ExportHeaders); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	if err := w.Write(profile.ToRow()); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	w.Flush()
	return w.Error()
}
