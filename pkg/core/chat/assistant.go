// Package chat implements the financial assistant: a conversational
// interface grounded in one document's extracted financials and raw text.
package chat

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"wealthscribe/pkg/core/llm"
	"wealthscribe/pkg/core/utils"
	"wealthscribe/pkg/models"
)

// Message is one turn of a conversation. Histories are append-only for
// the lifetime of the session.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Grounding context sent with every question: the normalized financial
// summary plus the head of the raw document text.
const contextTextLimit = 2000

const systemPrompt = `You are a financial assistant. Based on the provided financial data and the user's question, give a concise, informative answer. If the answer is not available in the data, say so and suggest what information is needed.`

// ErrUnknownSession is returned when a session ID was never registered.
var ErrUnknownSession = fmt.Errorf("unknown chat session")

// session holds one conversation and the document it is grounded in.
type session struct {
	fin      *models.ExtractedFinancials
	fullText string
	history  []Message
}

// Assistant answers questions about extracted documents and owns the
// per-session conversation state.
type Assistant struct {
	provider llm.Provider

	mu       sync.Mutex
	sessions map[string]*session
}

func NewAssistant(provider llm.Provider) *Assistant {
	return &Assistant{
		provider: provider,
		sessions: make(map[string]*session),
	}
}

// NewSession registers a conversation grounded in the given extraction
// result and raw document text, and returns its ID.
func (a *Assistant) NewSession(fin *models.ExtractedFinancials, fullText string) string {
	id := uuid.NewString()
	a.mu.Lock()
	a.sessions[id] = &session{fin: fin, fullText: fullText}
	a.mu.Unlock()
	return id
}

// History returns a copy of the session transcript.
func (a *Assistant) History(sessionID string) []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.sessions[sessionID]
	if s == nil {
		return nil
	}
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Answer sends the question with its grounding context to the model and
// appends both turns to the session history. The raw answer text is not
// validated beyond markdown cleanup.
func (a *Assistant) Answer(ctx context.Context, sessionID, question string) (string, error) {
	a.mu.Lock()
	s := a.sessions[sessionID]
	a.mu.Unlock()
	if s == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	prompt := buildPrompt(question, s.fin, s.fullText)

	raw, err := a.provider.GenerateResponse(ctx, prompt, systemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("assistant call: %w", err)
	}
	answer := utils.CleanMarkdown(raw)

	a.mu.Lock()
	s.history = append(s.history,
		Message{Role: "user", Content: question},
		Message{Role: "assistant", Content: answer},
	)
	a.mu.Unlock()

	return answer, nil
}

func buildPrompt(question string, fin *models.ExtractedFinancials, fullText string) string {
	// Truncate by characters, not bytes, so a multibyte rune is never
	// split mid-sequence.
	if utf8.RuneCountInString(fullText) > contextTextLimit {
		runes := []rune(fullText)
		fullText = string(runes[:contextTextLimit])
	}
	return fmt.Sprintf(`%s
Relevant text from the financial statement (truncated):
%s

User Question: %s`, fin.Summary(), fullText, question)
}
