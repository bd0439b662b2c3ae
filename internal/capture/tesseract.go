package capture

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/genie-desktop/genie-backend/internal/shared"
)

const defaultTesseractBinary = "tesseract"

// TesseractExtractor shells out to the tesseract CLI and reads the
// recognized text from stdout.
type TesseractExtractor struct {
	binary string
}

func NewTesseractExtractor(binary string) *TesseractExtractor {
	if binary == "" {
		binary = defaultTesseractBinary
	}
	return &TesseractExtractor{binary: binary}
}

func (e *TesseractExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, imagePath, "stdout")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrOCRFailed, err)
	}
	return strings.TrimSpace(string(out)), nil
}
