package clean

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/resumatch/resumatch/internal/ingest"
)

var csvHeader = []string{"title", "company", "location", "description", "url", "source"}

// ReadCSV loads postings from CSV. Multiline quoted fields are handled by
// the reader; rows with the wrong column count are skipped rather than
// failing the whole file.
func ReadCSV(r io.Reader) ([]ingest.Posting, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var postings []ingest.Posting
	for _, row := range records[1:] { // first row is the header
		if len(row) != len(csvHeader) {
			continue
		}
		postings = append(postings, ingest.Posting{
			Title:       row[0],
			Company:     row[1],
			Location:    row[2],
			Description: row[3],
			URL:         row[4],
			Source:      row[5],
		})
	}
	return postings, nil
}

// WriteCSV writes postings with a header row. Every field is quoted, not
// just the ones that need it, so descriptions with commas and newlines
// always round-trip the same way.
func WriteCSV(w io.Writer, postings []ingest.Posting) error {
	if err := writeQuotedRow(w, csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range postings {
		row := []string{p.Title, p.Company, p.Location, p.Description, p.URL, p.Source}
		if err := writeQuotedRow(w, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return nil
}

func writeQuotedRow(w io.Writer, row []string) error {
	quoted := make([]string, len(row))
	for i, field := range row {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

// LoadCSVFile reads postings from a file on disk.
func LoadCSVFile(path string) ([]ingest.Posting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// SaveCSVFile writes postings to a file on disk.
func SaveCSVFile(path string, postings []ingest.Posting) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, postings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
