package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/genie-desktop/genie-backend/internal/shared"
)

const defaultScreenshotBinary = "gnome-screenshot"

// ScreenCapturer shells out to gnome-screenshot and writes the capture to a
// temp file. The caller removes the file when done.
type ScreenCapturer struct {
	binary string
}

func NewScreenCapturer(binary string) *ScreenCapturer {
	if binary == "" {
		binary = defaultScreenshotBinary
	}
	return &ScreenCapturer{binary: binary}
}

func (c *ScreenCapturer) Capture(ctx context.Context) (string, error) {
	path := filepath.Join(os.TempDir(), shared.NewID("capture_")+".png")

	cmd := exec.CommandContext(ctx, c.binary, "-f", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %v: %s", shared.ErrCaptureFailed, err, out)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: no screenshot written: %v", shared.ErrCaptureFailed, err)
	}
	return path, nil
}
