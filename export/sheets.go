package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"linkedin-scraper/logger"
	"linkedin-scraper/models"
)

// SheetsWriter writes profiles to a Google Sheets spreadsheet
type SheetsWriter struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsWriter creates a writer from service account credentials, read
// from credentialsPath or, when that is empty, from the
// GOOGLE_SHEETS_CREDENTIALS environment variable
func NewSheetsWriter(spreadsheetID, credentialsPath string) (*SheetsWriter, error) {
	ctx := context.Background()

	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		credsJSON = []byte(credsEnv)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsWriter{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// WriteProfiles writes profiles with a header row, optionally clearing the
// sheet first
func (w *SheetsWriter) WriteProfiles(profiles []models.Profile, sheetName string, clearFirst bool) error {
	log := logger.Get()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if len(profiles) == 0 {
		log.Info("No profiles to write")
		return nil
	}

	values := [][]interface{}{headerRow()}
	for i := range profiles {
		values = append(values, profileRow(&profiles[i]))
	}

	rangeName := fmt.Sprintf("%s!A1", sheetName)

	if clearFirst {
		clearRange := fmt.Sprintf("%s!A:I", sheetName)
		_, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Do()
		if err != nil {
			log.Warnf("Failed to clear existing data: %v", err)
			// Continue anyway
		}
	}

	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, rangeName, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheets: %w", err)
	}

	log.Infof("Exported %d profiles to Google Sheets", len(profiles))
	log.Infof("Spreadsheet: https://docs.google.com/spreadsheets/d/%s", w.spreadsheetID)
	return nil
}

// AppendProfile appends a single profile below the existing rows
func (w *SheetsWriter) AppendProfile(profile *models.Profile, sheetName string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	body := &sheets.ValueRange{Values: [][]interface{}{profileRow(profile)}}
	_, err := w.service.Spreadsheets.Values.Append(w.spreadsheetID, fmt.Sprintf("%s!A:I", sheetName), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to sheets: %w", err)
	}
	return nil
}

func headerRow() []interface{} {
	row := make([]interface{}, len(models.ExportHeaders))
	for i, h := range models.ExportHeaders {
		row[i] = h
	}
	return row
}

func profileRow(p *models.Profile) []interface{} {
	row := make([]interface{}, 0, len(models.ExportHeaders))
	for _, field := range p.ToRow() {
		row = append(row, field)
	}
	return row
}

// ExtractSpreadsheetID pulls the spreadsheet ID out of a Google Sheets URL
func ExtractSpreadsheetID(url string) string {
	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}
	return strings.TrimSpace(idPart)
}
