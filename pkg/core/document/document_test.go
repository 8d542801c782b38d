package document

import (
	"context"
	"testing"
)

func TestRawTableHeader(t *testing.T) {
	tests := []struct {
		name  string
		table RawTable
		want  []string
	}{
		{"normal", RawTable{{"Particulars", "Q1"}, {"Revenue", "100"}}, []string{"Particulars", "Q1"}},
		{"empty", RawTable{}, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.table.Header()
			if len(got) != len(tt.want) {
				t.Fatalf("Header() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Header()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewLoaderDefaultsToTesseract(t *testing.T) {
	l := NewLoader()
	if l.OCR == nil {
		t.Fatal("NewLoader() must wire a default OCR engine")
	}
	if _, ok := l.OCR.(*TesseractEngine); !ok {
		t.Errorf("default OCR engine = %T, want *TesseractEngine", l.OCR)
	}
}

func TestTesseractEngineMissingBinary(t *testing.T) {
	e := &TesseractEngine{Bin: "/nonexistent/tesseract-binary"}
	if _, err := e.Recognize(context.Background(), "page.png"); err == nil {
		t.Fatal("Recognize() with a missing binary must fail")
	}
}

func TestFullTextMissingFile(t *testing.T) {
	l := NewLoader()
	if _, err := l.FullText("/nonexistent/statement.pdf"); err == nil {
		t.Fatal("FullText() on a missing file must fail")
	}
}
