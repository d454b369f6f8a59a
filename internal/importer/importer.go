package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/retry"
)

// SheetReader fetches a rectangular cell-value grid from a spreadsheet.
// *sheets.Client satisfies it.
type SheetReader interface {
	ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// ContactUpserter sends one contact record to the CRM's upsert endpoint.
// *ghl.Client satisfies it.
type ContactUpserter interface {
	UpsertContact(ctx context.Context, contact map[string]string) error
}

// Request is the body of an import trigger.
type Request struct {
	LocationID string `json:"locationId"`
	SheetName  string `json:"sheetName"`
}

// Validate checks that both required fields are present and non-empty.
func (r Request) Validate() error {
	if r.LocationID == "" || r.SheetName == "" {
		return &ValidationError{Message: "Missing locationId or sheetName"}
	}
	return nil
}

// Result tallies one import run. Succeeded and Failed count rows that
// reached the CRM; rows skipped for lacking both email and phone are
// counted in Skipped only and never move the other two counters.
type Result struct {
	Succeeded int
	Failed    int
	Skipped   int
	NoData    bool
}

// Summary renders the human-readable outcome sentence returned to the
// caller.
func (r Result) Summary() string {
	if r.NoData {
		return "No data to import."
	}
	return fmt.Sprintf("Import complete. %d contacts imported, %d failed.", r.Succeeded, r.Failed)
}

// Importer reads rows from one configured spreadsheet and upserts them
// into the CRM one at a time.
type Importer struct {
	reader        SheetReader
	crm           ContactUpserter
	spreadsheetID string
	fetchRetry    retry.Config
}

func New(reader SheetReader, crm ContactUpserter, spreadsheetID string, fetchRetry retry.Config) *Importer {
	return &Importer{
		reader:        reader,
		crm:           crm,
		spreadsheetID: spreadsheetID,
		fetchRetry:    fetchRetry,
	}
}

// Run executes one import: fetch the named sheet, map each data row to a
// contact record, filter rows lacking both email and phone, annotate with
// the location and provenance tag, and send each surviving record to the
// CRM sequentially. One row's failure never aborts the batch; it is
// tallied and the loop moves on. Only validation and fetch-level failures
// are returned as errors.
func (imp *Importer) Run(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	log.Debug().
		Str("location_id", req.LocationID).
		Str("sheet_name", req.SheetName).
		Msg("Starting import")

	// Extend range to Z1000 for reading all data
	readRange := req.SheetName + "!A1:Z1000"
	rows, err := retry.Do(ctx, imp.fetchRetry, func(ctx context.Context) ([][]interface{}, error) {
		return imp.reader.ReadSheet(ctx, imp.spreadsheetID, readRange)
	})
	if err != nil {
		return Result{}, &FetchError{SheetName: req.SheetName, Err: err}
	}

	if len(rows) < 2 {
		log.Info().
			Str("sheet_name", req.SheetName).
			Int("rows", len(rows)).
			Msg("No data rows to import")
		return Result{NoData: true}, nil
	}

	headers := rows[0]
	source := "Google Sheet Import: " + req.SheetName

	var result Result
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header row

		contact := MapRowToContact(row, headers)
		if contact["email"] == "" && contact["phone"] == "" {
			log.Debug().
				Int("row", rowNum).
				Msg("Skipping row without email or phone")
			result.Skipped++
			continue
		}

		contact["locationId"] = req.LocationID
		contact["source"] = source

		if err := imp.crm.UpsertContact(ctx, contact); err != nil {
			log.Warn().
				Err(err).
				Int("row", rowNum).
				Str("email", contact["email"]).
				Msg("Failed to upsert contact")
			result.Failed++
			continue
		}

		log.Debug().
			Int("row", rowNum).
			Str("email", contact["email"]).
			Msg("Upserted contact")
		result.Succeeded++
	}

	log.Info().
		Str("sheet_name", req.SheetName).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("Import complete")

	return result, nil
}
