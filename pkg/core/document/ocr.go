package document

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OCREngine recognizes text in a rendered page image. Implementations
// must be safe to call sequentially from a single extraction run.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// TesseractEngine shells out to the tesseract binary. Page segmentation
// mode 6 ("assume a single uniform block of text") works best for the
// sparse tabular pages this pipeline sees.
type TesseractEngine struct {
	Bin string // path to tesseract, defaults to "tesseract"
}

var _ OCREngine = (*TesseractEngine)(nil)

func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	bin := e.Bin
	if bin == "" {
		bin = "tesseract"
	}

	cmd := exec.CommandContext(ctx, bin, imagePath, "stdout", "--psm", "6")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w", imagePath, err)
	}
	return strings.TrimSpace(string(out)), nil
}
