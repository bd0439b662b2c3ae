package capture

import "context"

// Capturer produces a screenshot file and returns its path. Implementations
// are OS-specific edge adapters; the conversation core only sees this
// interface.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// Extractor runs OCR over an image file and returns the recognized text,
// which may be empty.
type Extractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}
