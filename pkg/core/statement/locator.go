package statement

import (
	"context"
	"log"
	"strings"

	"wealthscribe/pkg/core/document"
)

// PageSource yields the per-page grids and OCR text the locator works on.
// *document.Loader satisfies it; tests inject fakes.
type PageSource interface {
	NumPages(path string) (int, error)
	PageRows(path string, pageNum int) (document.RawTable, error)
	OCRPage(ctx context.Context, path string, pageNum int) (string, error)
}

// LocateResult is the outcome of table location. Exactly one of Table or
// Text is populated: a structured table when the header marker was found,
// otherwise the OCR text of the first page.
type LocateResult struct {
	Table document.RawTable
	Text  string
	Page  int
}

// Locate scans every page for a row containing the "Particulars" marker
// and returns the grid from that row downward as the financial table.
// When no page carries the marker, it falls back to OCR text for the
// first page; blank OCR output degrades to an empty result.
func Locate(ctx context.Context, src PageSource, path string) (*LocateResult, error) {
	pages, err := src.NumPages(path)
	if err != nil {
		return nil, err
	}

	for p := 1; p <= pages; p++ {
		grid, err := src.PageRows(path, p)
		if err != nil {
			continue
		}
		for i, row := range grid {
			if HasHeaderMarker(row) {
				log.Printf("[Locator] Table found on page %d", p)
				return &LocateResult{Table: document.RawTable(grid[i:]), Page: p}, nil
			}
		}
	}

	log.Printf("[Locator] %v, using OCR on page 1", ErrTableNotFound)
	text, err := src.OCRPage(ctx, path, 1)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return &LocateResult{Page: 1}, nil
	}
	return &LocateResult{Text: text, Page: 1}, nil
}
