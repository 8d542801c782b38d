// Package chat exposes the conversational endpoint over extracted
// documents.
package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wealthscribe/pkg/core/chat"
	"wealthscribe/pkg/core/llm"
	"wealthscribe/pkg/core/store"
	"wealthscribe/pkg/core/utils"
	"wealthscribe/pkg/models"
)

// Handler provides the HTTP handler for assistant conversations.
type Handler struct {
	assistant *chat.Assistant
	repo      *store.ExtractionRepo
}

// NewHandler creates a chat handler. repo may be nil when no database
// is configured.
func NewHandler(assistant *chat.Assistant, repo *store.ExtractionRepo) *Handler {
	return &Handler{assistant: assistant, repo: repo}
}

// Request is one user turn against an open session.
type Request struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Response carries the assistant's answer, both as markdown and as
// rendered HTML for clients that display rich text.
type Response struct {
	SessionID  string `json:"session_id"`
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html,omitempty"`
}

// HandleChat answers a question within an extraction session.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "session_id and message are required")
		return
	}

	answer, err := h.assistant.Answer(r.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrUnknownSession):
			writeError(w, http.StatusNotFound, "Unknown session, upload a document first")
		case errors.Is(err, llm.ErrUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Assistant unavailable, please retry later.")
		default:
			log.Printf("[Chat] Answer failed for session %s: %v", req.SessionID, err)
			writeError(w, http.StatusInternalServerError, "Assistant failed")
		}
		return
	}

	if h.repo != nil {
		if err := h.repo.SaveTranscript(r.Context(), req.SessionID, "", h.assistant.History(req.SessionID)); err != nil {
			log.Printf("[Chat] Persisting transcript failed: %v", err)
		}
	}

	answerHTML, err := utils.RenderMarkdown(answer)
	if err != nil {
		log.Printf("[Chat] Rendering answer failed: %v", err)
		answerHTML = ""
	}

	json.NewEncoder(w).Encode(Response{
		SessionID:  req.SessionID,
		Answer:     answer,
		AnswerHTML: answerHTML,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ExtractionError{
		ErrorStatus: status,
		Message:     message,
	})
}
