package ocr

import "context"

// TextExtractor is Stage 1: image file -> raw detected text.
//
// An empty string with a nil error means the provider looked at the image and
// found no text. Any provider rejection or malformed response is an error;
// callers must treat the two cases differently.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
