package reports

import (
	"io"
	"log"

	"logmed-backend/internal/matching"
	"logmed-backend/internal/models"
)

// Upload is one spreadsheet file of an import batch
type Upload struct {
	Name   string
	Reader io.Reader
}

// FileResult reports what happened to one file of a batch
type FileResult struct {
	FileName string `json:"file_name"`
	Drafts   int    `json:"drafts"`
	Error    string `json:"error,omitempty"`
}

// Catalog is the reference data extraction resolves names against
type Catalog struct {
	Drivers []models.Driver
	Routes  []models.Route
}

// ExtractBatch parses uploads in order. A file that fails is reported and
// skipped; drafts from the other files are still returned.
func ExtractBatch(kind Kind, uploads []Upload, catalog Catalog, m matching.Matcher) ([]Draft, []FileResult) {
	var drafts []Draft
	results := make([]FileResult, 0, len(uploads))

	for _, u := range uploads {
		result := FileResult{FileName: u.Name}

		rows, err := ReadRows(u.Reader)
		if err != nil {
			log.Printf("❌ Failed to read report %s: %v", u.Name, err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		switch kind {
		case KindDriver:
			draft, err := ExtractDriver(rows, u.Name, catalog.Drivers, catalog.Routes, m)
			if err != nil {
				log.Printf("⚠️  Skipping driver report %s: %v", u.Name, err)
				result.Error = err.Error()
				break
			}
			drafts = append(drafts, draft)
			result.Drafts = 1
		default:
			extracted := ExtractMain(rows, catalog.Drivers, m)
			drafts = append(drafts, extracted...)
			result.Drafts = len(extracted)
		}

		log.Printf("📄 Report %s (%s): %d draft(s)", u.Name, kind, result.Drafts)
		results = append(results, result)
	}
	return drafts, results
}
