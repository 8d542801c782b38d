package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"wealthscribe/pkg/core/document"
	"wealthscribe/pkg/core/llm"
	"wealthscribe/pkg/models"
)

// --- Mocks ---

type mockSource struct {
	fullText    string
	fullTextErr error
	pages       map[int]document.RawTable
	ocrText     string
	ocrErr      error
}

func (m *mockSource) FullText(string) (string, error) { return m.fullText, m.fullTextErr }
func (m *mockSource) NumPages(string) (int, error)    { return len(m.pages), nil }
func (m *mockSource) PageRows(_ string, pageNum int) (document.RawTable, error) {
	return m.pages[pageNum], nil
}
func (m *mockSource) OCRPage(context.Context, string, int) (string, error) {
	if m.ocrErr != nil {
		return "", m.ocrErr
	}
	return m.ocrText, nil
}

type mockFallback struct {
	calls int
	err   error
	fill  func(fin *models.ExtractedFinancials)
}

func (m *mockFallback) Run(_ context.Context, _ string, fin *models.ExtractedFinancials) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.fill != nil {
		m.fill(fin)
	}
	return nil
}

func f(v float64) *float64 { return &v }

const cleanText = "Statement of Acme Industries Ltd\nFigures in Lakhs unless stated\nquarter ended 30-06-2024 and 31-03-2024"

func cleanTable() map[int]document.RawTable {
	return map[int]document.RawTable{
		1: {
			{"Statement of Acme Industries Ltd"},
			{"Particulars", "Quarter Ended 30 Jun 2024", "Year Ended 31 Mar 2024"},
			{"Total Revenue", "1,234.50", "5,678.90"},
			{"Net Profit", "200", "800"},
		},
	}
}

// --- Tests ---

func TestRunCleanTableNeverInvokesFallback(t *testing.T) {
	src := &mockSource{fullText: cleanText, pages: cleanTable()}
	fb := &mockFallback{}

	fin, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}

	if fb.calls != 0 {
		t.Errorf("fallback calls = %d, want 0 when local parse succeeds", fb.calls)
	}
	if fin.CurrentPeriod.Revenue == nil || *fin.CurrentPeriod.Revenue != 1234.50 {
		t.Errorf("current revenue = %v, want 1234.50", fin.CurrentPeriod.Revenue)
	}
	if fin.AnnualPeriod.Revenue == nil || *fin.AnnualPeriod.Revenue != 5678.90 {
		t.Errorf("annual revenue = %v, want 5678.90", fin.AnnualPeriod.Revenue)
	}
	if fin.CurrentPeriod.Unit != "Lakhs" {
		t.Errorf("unit = %q, want Lakhs", fin.CurrentPeriod.Unit)
	}
	if fin.CompanyName == "" || fin.CompanyName == "Unknown Company" {
		t.Errorf("company = %q, want detected name", fin.CompanyName)
	}
	if fin.LatestPeriod != "Q2 2024" || fin.PreviousPeriod != "Q1 2024" {
		t.Errorf("periods = %q/%q, want Q2 2024/Q1 2024", fin.LatestPeriod, fin.PreviousPeriod)
	}
	if fin.AnnualPeriod.Year != "2024" {
		t.Errorf("year = %q, want 2024", fin.AnnualPeriod.Year)
	}
}

func TestRunFallbackFillsMissingFields(t *testing.T) {
	src := &mockSource{
		fullText: "Statement of Acme Ltd, no table in this text",
		pages:    map[int]document.RawTable{1: {{"free text only"}}},
		ocrText:  "still no table",
	}
	fb := &mockFallback{fill: func(fin *models.ExtractedFinancials) {
		fin.CurrentPeriod.Revenue = f(42)
		fin.CurrentPeriod.Unit = "Millions"
	}}

	fin, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
	if fin.CurrentPeriod.Revenue == nil || *fin.CurrentPeriod.Revenue != 42 {
		t.Errorf("revenue = %v, want 42", fin.CurrentPeriod.Revenue)
	}
	if fin.CurrentPeriod.Unit != "Millions" {
		t.Errorf("unit = %q, want Millions from fallback", fin.CurrentPeriod.Unit)
	}
	// No year anywhere: default placeholder applies.
	if fin.AnnualPeriod.Year != "Unknown Year" {
		t.Errorf("year = %q, want Unknown Year", fin.AnnualPeriod.Year)
	}
}

func TestRunColumnMappingFailureDegradesToFallback(t *testing.T) {
	src := &mockSource{
		fullText: "Statement of Acme Ltd",
		pages: map[int]document.RawTable{1: {
			{"Particulars", "Q1", "Q2"}, // no "year ended" marker
			{"Total Revenue", "10", "20"},
		}},
	}
	fb := &mockFallback{fill: func(fin *models.ExtractedFinancials) {
		fin.AnnualPeriod.NetProfit = f(5)
	}}

	fin, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if fb.calls != 1 {
		t.Errorf("fallback calls = %d, want 1 after mapping failure", fb.calls)
	}
	if fin.CurrentPeriod.Revenue != nil {
		t.Error("no figure may be extracted without mapped columns")
	}
}

func TestRunNothingFoundAnywhere(t *testing.T) {
	src := &mockSource{
		fullText: "a letter with no numbers",
		pages:    map[int]document.RawTable{1: {{"a letter"}}},
	}
	fb := &mockFallback{} // fills nothing

	_, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if !errors.Is(err, ErrNoFinancialDataFound) {
		t.Fatalf("err = %v, want ErrNoFinancialDataFound", err)
	}
}

func TestRunNoContentAnywhere(t *testing.T) {
	src := &mockSource{
		fullTextErr: document.ErrNoContentExtracted,
		ocrErr:      document.ErrNoContentExtracted,
	}

	_, err := NewWithSource(src, &mockFallback{}).Run(context.Background(), "doc.pdf")
	if !errors.Is(err, document.ErrNoContentExtracted) {
		t.Fatalf("err = %v, want ErrNoContentExtracted", err)
	}
}

func TestRunScannedDocumentUsesOCRText(t *testing.T) {
	src := &mockSource{
		fullTextErr: document.ErrNoContentExtracted,
		ocrText:     "Statement of Scanned Co in Crores 31-12-2023",
		pages:       map[int]document.RawTable{},
	}
	fb := &mockFallback{fill: func(fin *models.ExtractedFinancials) {
		fin.CurrentPeriod.Revenue = f(9)
	}}

	fin, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if fin.CurrentPeriod.Unit != "Crores" {
		t.Errorf("unit = %q, want Crores detected from OCR text", fin.CurrentPeriod.Unit)
	}
	if fin.LatestPeriod != "Q4 2023" {
		t.Errorf("latest = %q, want Q4 2023", fin.LatestPeriod)
	}
}

func TestRunProviderOutageIsDistinctFromNoData(t *testing.T) {
	src := &mockSource{
		fullText: "no table here",
		pages:    map[int]document.RawTable{1: {{"text"}}},
	}
	fb := &mockFallback{err: fmt.Errorf("call failed: %w", llm.ErrUnavailable)}

	_, err := NewWithSource(src, fb).Run(context.Background(), "doc.pdf")
	if !errors.Is(err, ErrExtractionUnavailable) {
		t.Fatalf("err = %v, want ErrExtractionUnavailable", err)
	}
	if errors.Is(err, ErrNoFinancialDataFound) {
		t.Error("outage must not be conflated with no-data")
	}
}
