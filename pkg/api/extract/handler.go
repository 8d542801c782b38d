// Package extract exposes the document extraction endpoint.
package extract

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"wealthscribe/pkg/core/chat"
	"wealthscribe/pkg/core/pipeline"
	"wealthscribe/pkg/core/store"
	"wealthscribe/pkg/models"
)

// maxUploadBytes caps the multipart form held in memory.
const maxUploadBytes = 32 << 20

// Handler provides the HTTP handler for PDF extraction.
type Handler struct {
	extractor *pipeline.Extractor
	assistant *chat.Assistant
	repo      *store.ExtractionRepo
}

// NewHandler creates an extraction handler. repo may be nil when no
// database is configured.
func NewHandler(extractor *pipeline.Extractor, assistant *chat.Assistant, repo *store.ExtractionRepo) *Handler {
	return &Handler{extractor: extractor, assistant: assistant, repo: repo}
}

// Response is the success envelope: the extraction result plus the chat
// session opened over it.
type Response struct {
	SessionID  string                      `json:"session_id"`
	Financials *models.ExtractedFinancials `json:"financials"`
	Verdict    string                      `json:"verdict"`
}

// HandleExtract accepts a multipart PDF upload and returns the
// normalized financials.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	tmpPath, err := saveUpload(file)
	if err != nil {
		log.Printf("[Extract] Saving upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	defer os.Remove(tmpPath)

	fin, fullText, err := h.extractor.RunWithText(r.Context(), tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrNoFinancialDataFound):
			writeError(w, http.StatusNotFound, pipeline.NotFoundMessage)
		case errors.Is(err, pipeline.ErrExtractionUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Extraction service unavailable, please retry later.")
		default:
			log.Printf("[Extract] Extraction failed for %q: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, "Extraction failed")
		}
		return
	}

	sessionID := h.assistant.NewSession(fin, fullText)

	if h.repo != nil {
		if err := h.repo.SaveExtraction(r.Context(), header.Filename, fin); err != nil {
			log.Printf("[Extract] Persisting extraction failed: %v", err)
		}
	}

	json.NewEncoder(w).Encode(Response{
		SessionID:  sessionID,
		Financials: fin,
		Verdict:    fin.Verdict(),
	})
}

// saveUpload writes the uploaded PDF to a temp file and returns its path.
func saveUpload(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "wealthscribe-upload-*.pdf")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return filepath.Clean(tmp.Name()), nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ExtractionError{
		ErrorStatus: status,
		Message:     message,
	})
}
