// Package document obtains text from financial statement PDFs. Structured
// extraction is attempted first; image-only pages fall back to rendering
// the page and running OCR on it.
package document

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// ErrNoContentExtracted signals that neither structured extraction nor
// OCR produced any text for the document.
var ErrNoContentExtracted = errors.New("no content extracted from document")

// RawTable is an ordered grid of cell strings reconstructed from one PDF
// page. The first row is treated as the header. It is transient and not
// owned beyond the extraction call.
type RawTable [][]string

// Header returns the first row, or nil for an empty table.
func (t RawTable) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Words closer together than this (in PDF points) belong to the same
// cell; a wider gap starts a new column.
const cellGap = 14.0

// Loader extracts page text and tables from a PDF, falling back to OCR
// through the configured engine.
type Loader struct {
	OCR OCREngine
}

// NewLoader returns a Loader backed by the tesseract CLI engine.
func NewLoader() *Loader {
	return &Loader{OCR: &TesseractEngine{}}
}

// NumPages returns the page count of the document.
func (l *Loader) NumPages(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}

// FullText concatenates the structured text of every page. Pages that
// fail to extract are skipped. Returns ErrNoContentExtracted when the
// whole document yields nothing.
func (l *Loader) FullText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	full := strings.TrimSpace(b.String())
	if full == "" {
		return "", ErrNoContentExtracted
	}
	return full, nil
}

// PageRows reconstructs a cell grid from the positioned text of one page
// (1-based). Words on the same visual row are grouped into cells wherever
// the horizontal gap exceeds the cell threshold.
func (l *Loader) PageRows(path string, pageNum int) (RawTable, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	if pageNum < 1 || pageNum > reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range", pageNum)
	}
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("reading rows from page %d: %w", pageNum, err)
	}

	var table RawTable
	for _, row := range rows {
		words := make([]pdf.Text, len(row.Content))
		copy(words, row.Content)
		sort.Slice(words, func(i, j int) bool { return words[i].X < words[j].X })

		var cells []string
		var current strings.Builder
		lastEnd := -1.0

		for _, w := range words {
			if w.S == "" {
				continue
			}
			if lastEnd >= 0 && w.X-lastEnd > cellGap {
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			} else if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(w.S)
			lastEnd = w.X + w.W
		}
		if current.Len() > 0 {
			cells = append(cells, strings.TrimSpace(current.String()))
		}
		if len(cells) > 0 {
			table = append(table, cells)
		}
	}

	return table, nil
}

// PageText returns plain text for one page (1-based), falling back to OCR
// when structured extraction yields nothing.
func (l *Loader) PageText(ctx context.Context, path string, pageNum int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	text := ""
	if pageNum >= 1 && pageNum <= reader.NumPage() {
		page := reader.Page(pageNum)
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = strings.TrimSpace(t)
			}
		}
	}
	f.Close()

	if text != "" {
		return text, nil
	}
	return l.OCRPage(ctx, path, pageNum)
}

// OCRPage renders the page (1-based) to a temporary PNG and runs the OCR
// engine on it. The rendered image is removed on every exit path.
func (l *Loader) OCRPage(ctx context.Context, path string, pageNum int) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF for rendering: %w", err)
	}
	defer doc.Close()

	if pageNum < 1 || pageNum > doc.NumPage() {
		return "", fmt.Errorf("page %d out of range", pageNum)
	}

	img, err := doc.Image(pageNum - 1) // go-fitz pages are 0-based
	if err != nil {
		return "", fmt.Errorf("rendering page %d: %w", pageNum, err)
	}

	tmp, err := os.CreateTemp("", "wealthscribe-page-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding page image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp image: %w", err)
	}

	log.Printf("[Loader] No structured text on page %d, using OCR", pageNum)

	text, err := l.OCR.Recognize(ctx, tmp.Name())
	if err != nil {
		return "", fmt.Errorf("ocr on page %d: %w", pageNum, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoContentExtracted
	}
	return text, nil
}
