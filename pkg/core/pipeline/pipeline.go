// Package pipeline wires the extraction stages end to end: document text
// loading, period resolution, table location, row classification, the LLM
// fallback and the detection passes, producing one normalized
// ExtractedFinancials per document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wealthscribe/pkg/core/document"
	"wealthscribe/pkg/core/fallback"
	"wealthscribe/pkg/core/llm"
	"wealthscribe/pkg/core/period"
	"wealthscribe/pkg/core/statement"
	"wealthscribe/pkg/models"
)

var (
	// ErrNoFinancialDataFound is terminal: neither the local parse nor
	// the LLM fallback produced a single figure.
	ErrNoFinancialDataFound = errors.New("no financial data found in the document")

	// ErrExtractionUnavailable is terminal and distinct from "no data":
	// the LLM collaborator could not be reached.
	ErrExtractionUnavailable = errors.New("extraction service unavailable")
)

// NotFoundMessage is the user-facing wording of the 404-style error
// object.
const NotFoundMessage = "No financial data found in the document."

// Source supplies document text and page grids. *document.Loader
// satisfies it.
type Source interface {
	statement.PageSource
	FullText(path string) (string, error)
}

// FallbackStrategy is the lower-confidence extraction invoked only when
// the local table parse found nothing for the current period.
type FallbackStrategy interface {
	Run(ctx context.Context, documentText string, fin *models.ExtractedFinancials) error
}

// Extractor executes the full pipeline for one document. Stages run
// sequentially to completion; all intermediate state lives in the run and
// is discarded when it returns.
type Extractor struct {
	src      Source
	fallback FallbackStrategy
}

// New builds an Extractor with the default loader and the given LLM
// provider backing the fallback strategy.
func New(provider llm.Provider) *Extractor {
	return &Extractor{
		src:      document.NewLoader(),
		fallback: fallback.NewExtractor(provider),
	}
}

// NewWithSource injects a custom source and fallback, e.g. for tests.
func NewWithSource(src Source, fb FallbackStrategy) *Extractor {
	return &Extractor{src: src, fallback: fb}
}

// documentText returns the document's raw text, falling back to OCR of
// the first page for scanned documents.
func (e *Extractor) documentText(ctx context.Context, path string) (string, error) {
	fullText, err := e.src.FullText(path)
	if errors.Is(err, document.ErrNoContentExtracted) {
		// Text-native extraction found nothing; the document may still be
		// a scanned image.
		fullText, err = e.src.OCRPage(ctx, path, 1)
	}
	if err != nil {
		return "", fmt.Errorf("loading document text: %w", err)
	}
	return fullText, nil
}

// Run extracts normalized financials from the PDF at path.
func (e *Extractor) Run(ctx context.Context, path string) (*models.ExtractedFinancials, error) {
	fin, _, err := e.RunWithText(ctx, path)
	return fin, err
}

// RunWithText additionally returns the raw document text loaded during
// the run, so callers grounding a chat session do not load the document
// (and possibly OCR it) a second time.
func (e *Extractor) RunWithText(ctx context.Context, path string) (*models.ExtractedFinancials, string, error) {
	start := time.Now()

	fullText, err := e.documentText(ctx, path)
	if err != nil {
		return nil, "", err
	}

	fin := &models.ExtractedFinancials{}

	latest, previous := period.Resolve(fullText)
	if latest != nil {
		fin.LatestPeriod = latest.Label()
	}
	if previous != nil {
		fin.PreviousPeriod = previous.Label()
	}

	// Local detection runs before the fallback so its results count as
	// higher confidence under the fill-if-absent merge.
	if unit := statement.DetectUnit(fullText); unit != statement.UnknownUnit {
		fin.CurrentPeriod.Unit = unit
		fin.AnnualPeriod.Unit = unit
	}
	if company := statement.DetectCompany(fullText); company != statement.UnknownCompany {
		fin.CompanyName = company
	}
	if year := statement.DetectYear(fullText); year != statement.UnknownYear {
		fin.AnnualPeriod.Year = year
	}

	loc, err := statement.Locate(ctx, e.src, path)
	if err != nil {
		log.Printf("[Pipeline] Table location failed: %v", err)
	} else if loc.Table != nil {
		if cols, err := statement.MapColumns(loc.Table.Header()); err != nil {
			log.Printf("[Pipeline] %v, figures stay unset", err)
		} else {
			statement.ExtractRows(loc.Table, cols, fin)
		}
	}

	if fin.CurrentPeriod.IsEmpty() {
		log.Printf("[Pipeline] Local parse empty, invoking LLM fallback")
		if err := e.fallback.Run(ctx, fullText, fin); err != nil {
			if errors.Is(err, llm.ErrUnavailable) {
				return nil, "", fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
			}
			return nil, "", err
		}
	}

	if fin.IsEmpty() {
		return nil, "", ErrNoFinancialDataFound
	}

	applyDefaults(fin)

	log.Printf("[Pipeline] Extraction for %q completed in %v", fin.CompanyName, time.Since(start))
	return fin, fullText, nil
}

// applyDefaults fills the "unknown" placeholders for fields no strategy
// populated.
func applyDefaults(fin *models.ExtractedFinancials) {
	if fin.CompanyName == "" {
		fin.CompanyName = statement.UnknownCompany
	}
	if fin.CurrentPeriod.Unit == "" {
		fin.CurrentPeriod.Unit = statement.UnknownUnit
	}
	if fin.AnnualPeriod.Unit == "" {
		fin.AnnualPeriod.Unit = statement.UnknownUnit
	}
	if fin.AnnualPeriod.Year == "" {
		fin.AnnualPeriod.Year = statement.UnknownYear
	}
}
