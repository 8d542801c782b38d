package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"wealthscribe/pkg/core/chat"
	"wealthscribe/pkg/models"
)

// ExtractionRepo persists extraction results and conversation transcripts.
// Persistence is optional: the pipeline and API work without a database,
// and callers skip the repo when InitDB was never run.
type ExtractionRepo struct{}

func NewExtractionRepo() *ExtractionRepo {
	return &ExtractionRepo{}
}

// SaveExtraction upserts the extracted financials for a document, keyed
// by the uploaded file name.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS extractions (
//   document_name TEXT PRIMARY KEY,
//   company_name TEXT,
//   financials_json JSONB,
//   updated_at TIMESTAMPTZ
// );
func (r *ExtractionRepo) SaveExtraction(ctx context.Context, documentName string, fin *models.ExtractedFinancials) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(fin)
	if err != nil {
		return fmt.Errorf("failed to marshal financials: %w", err)
	}

	query := `
		INSERT INTO extractions (document_name, company_name, financials_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_name)
		DO UPDATE SET
			company_name = EXCLUDED.company_name,
			financials_json = EXCLUDED.financials_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, documentName, fin.CompanyName, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}

	return nil
}

// LoadExtraction retrieves the stored financials for a document name.
func (r *ExtractionRepo) LoadExtraction(ctx context.Context, documentName string) (*models.ExtractedFinancials, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT financials_json FROM extractions WHERE document_name = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, documentName).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no extraction found for document %s", documentName)
		}
		return nil, fmt.Errorf("failed to load extraction: %w", err)
	}

	fin := &models.ExtractedFinancials{}
	if err := json.Unmarshal(jsonData, fin); err != nil {
		return nil, fmt.Errorf("failed to unmarshal financials: %w", err)
	}

	return fin, nil
}

// SaveTranscript upserts a session's full conversation history.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS conversations (
//   session_id TEXT PRIMARY KEY,
//   document_name TEXT,
//   transcript_json JSONB,
//   updated_at TIMESTAMPTZ
// );
func (r *ExtractionRepo) SaveTranscript(ctx context.Context, sessionID, documentName string, history []chat.Message) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	query := `
		INSERT INTO conversations (session_id, document_name, transcript_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id)
		DO UPDATE SET
			transcript_json = EXCLUDED.transcript_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, sessionID, documentName, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}
