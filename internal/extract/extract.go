package extract

import (
	"context"
	"errors"
)

// ErrExtractionFailed indicates the document could not be converted to text.
// Documents that yield no text at all fail with this error as well: an empty
// extraction is never stored as a valid resume.
var ErrExtractionFailed = errors.New("text extraction failed")

// Extractor converts a document payload into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
