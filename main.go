package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"linkedin-scraper/config"
	"linkedin-scraper/db"
	"linkedin-scraper/export"
	"linkedin-scraper/fetcher"
	"linkedin-scraper/locator"
	"linkedin-scraper/logger"
	"linkedin-scraper/models"
	"linkedin-scraper/notify"
	"linkedin-scraper/opentowork"
	"linkedin-scraper/pace"
	"linkedin-scraper/scraper"
)

func main() {
	job := flag.String("job", "", "Job title to search for")
	location := flag.String("location", "", "Location to filter by (free text)")
	maxProfiles := flag.Int("max", 100, "Maximum profiles to collect")
	headless := flag.Bool("headless", false, "Run the browser headless (not recommended, login is manual)")
	allProfiles := flag.Bool("all-profiles", false, "Include profiles without an Open to Work badge")
	selectorsPath := flag.String("selectors", "", "YAML file overriding selector strategies")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to export to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	saveDB := flag.Bool("db", false, "Also save profiles to Postgres")
	verify := flag.Bool("verify", false, "Re-check unflagged profiles on their full profile page (slower)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		logger.SetVerbose()
	}
	log := logger.Get()

	if *job == "" {
		*job = prompt("Job title to search for")
	}
	if *job == "" {
		log.Fatal("A job title is required")
	}

	err := run(*job, *location, *maxProfiles, *headless, *allProfiles, *verify,
		*selectorsPath, *spreadsheetURL, *credentialsPath, *saveDB)
	if err != nil {
		log.Fatalf("Scraping failed: %v", err)
	}
}

func run(job, location string, maxProfiles int, headless, allProfiles, verify bool,
	selectorsPath, spreadsheetURL, credentialsPath string, saveDB bool) error {
	log := logger.Get()

	cfg := config.Load()
	if headless {
		cfg.Headless = true
	}

	strategies := locator.Defaults()
	if selectorsPath != "" {
		overrides, err := config.LoadSelectorOverrides(selectorsPath)
		if err != nil {
			return err
		}
		strategies.Apply(overrides.Selectors)
		log.Infof("Loaded selector overrides from %s", selectorsPath)
	}

	fmt.Println("LinkedIn Open to Work Scraper")
	fmt.Printf("Search: %s\n", job)
	fmt.Printf("Location: %s\n", orAny(location))
	fmt.Printf("Max profiles: %d\n", maxProfiles)
	if allProfiles {
		fmt.Println("Filter: all profiles")
	} else {
		fmt.Println("Filter: Open to Work only")
	}
	fmt.Println()

	pacer := pace.New(cfg)
	session := scraper.NewSession(cfg, pacer)
	if err := session.Start(); err != nil {
		if errors.Is(err, scraper.ErrProfileLocked) {
			return fmt.Errorf("cannot start: %w", err)
		}
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	if session.Ephemeral() {
		log.Warn("Running with a temporary browser profile; your LinkedIn login will not persist")
	}

	detector := opentowork.NewDetector(fetcher.NewImageFetcher())
	engine := scraper.New(cfg, session, pacer, strategies, detector)

	// A SIGINT stops pulling from the stream; profiles collected so far are
	// still exported.
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	var profiles []models.Profile
	for profile := range engine.ScrapeSearchResults(scraper.Options{
		JobTitle:       job,
		Location:       location,
		MaxProfiles:    maxProfiles,
		OpenToWorkOnly: !allProfiles,
	}) {
		profiles = append(profiles, profile)

		stop := false
		select {
		case <-interrupted:
			log.Warn("Interrupted, keeping profiles collected so far")
			stop = true
		default:
		}
		if stop {
			break
		}
	}

	state := engine.State()
	log.Infof("Scraping complete: %d profiles collected from %d scanned", state.Collected, state.TotalScanned)

	if len(profiles) == 0 {
		fmt.Println("No profiles found")
		return nil
	}

	if verify {
		verifyOnProfilePages(profiles, session, pacer, detector)
	}

	printResultsTable(profiles)

	outputDir, err := cfg.EnsureOutputDir()
	if err != nil {
		return err
	}

	csvPath, err := export.WriteCSV(profiles, outputDir, "")
	if err != nil {
		return fmt.Errorf("CSV export failed: %w", err)
	}
	fmt.Printf("Exported to: %s\n", csvPath)

	if spreadsheetURL != "" {
		if err := exportToSheets(profiles, spreadsheetURL, credentialsPath); err != nil {
			log.Errorf("Google Sheets export failed: %v", err)
		}
	}

	if saveDB {
		if err := saveToDatabase(profiles, job); err != nil {
			log.Errorf("Database save failed: %v", err)
		}
	}

	if notifier := notify.FromEnv(); notifier != nil {
		if err := notifier.SendRunSummary(job, state.Collected, state.TotalScanned, csvPath); err != nil {
			log.Warnf("Telegram notification failed: %v", err)
		}
	}

	fmt.Printf("Done! Collected %d profiles.\n", len(profiles))
	return nil
}

// verifyOnProfilePages revisits profiles that carried no badge in the search
// results and re-checks the full profile page, which exposes indicators the
// result card may omit.
func verifyOnProfilePages(profiles []models.Profile, session *scraper.Session, pacer *pace.Pacer, detector *opentowork.Detector) {
	log := logger.Get()

	for i := range profiles {
		if profiles[i].IsOpenToWork || profiles[i].ProfileURL == "" {
			continue
		}
		page, err := session.FetchProfilePage(profiles[i].ProfileURL)
		if err != nil {
			log.Debugf("Could not open profile page %s: %v", profiles[i].ProfileURL, err)
			continue
		}
		if detector.DetectOnPage(page) {
			profiles[i].IsOpenToWork = true
			log.Infof("Profile page check upgraded %s to Open to Work", profiles[i].FullName)
		}
		pacer.HumanDelayDefault()
		pacer.RecordAction()
	}
}

func exportToSheets(profiles []models.Profile, spreadsheetURL, credentialsPath string) error {
	spreadsheetID := export.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		return fmt.Errorf("could not extract spreadsheet ID from URL: %s", spreadsheetURL)
	}

	writer, err := export.NewSheetsWriter(spreadsheetID, credentialsPath)
	if err != nil {
		return err
	}
	return writer.WriteProfiles(profiles, "Sheet1", false)
}

func saveToDatabase(profiles []models.Profile, searchQuery string) error {
	store, err := db.New()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveProfiles(profiles, searchQuery)
}

// printResultsTable prints the first profiles as a plain text table
func printResultsTable(profiles []models.Profile) {
	const maxRows = 20

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEADLINE\tLOCATION\tOPEN TO WORK")

	for i, p := range profiles {
		if i >= maxRows {
			fmt.Fprintf(w, "...\t(%d more)\t...\t...\n", len(profiles)-maxRows)
			break
		}
		openToWork := "No"
		if p.IsOpenToWork {
			openToWork = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.FullName, truncate(p.Headline, 40), p.Location, openToWork)
	}
	w.Flush()
	fmt.Println()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
