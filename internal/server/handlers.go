package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/importer"
)

type importResponse struct {
	Message      string `json:"message"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
}

// handleImport triggers one import run. Validation problems map to 400,
// fetch-level failures to 500; individual row failures are only visible
// in the aggregate failure count.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := s.importer.Run(r.Context(), req)
	if err != nil {
		var validationErr *importer.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Message, "")
			return
		}

		var fetchErr *importer.FetchError
		if errors.As(err, &fetchErr) {
			log.Error().Err(err).Str("sheet_name", req.SheetName).Msg("Sheet fetch failed")
			writeError(w, http.StatusInternalServerError, "Failed to import contacts", err.Error())
			return
		}

		log.Error().Err(err).Msg("Import failed")
		writeError(w, http.StatusInternalServerError, "Failed to import contacts", err.Error())
		return
	}

	if s.notifier != nil && !result.NoData {
		s.notifier.NotifyImportSummary(r.Context(), req.SheetName, result.Succeeded, result.Failed, result.Skipped)
	}

	writeJSON(w, http.StatusOK, importResponse{
		Message:      result.Summary(),
		SuccessCount: result.Succeeded,
		FailureCount: result.Failed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
