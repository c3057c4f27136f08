package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// PDF extracts plain text from PDF payloads. Extraction is whole-document: a
// payload that cannot be parsed fails entirely, no partial text is returned.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

func (p *PDF) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text := normalizeWhitespace(buf.String())
	if text == "" {
		return "", fmt.Errorf("%w: document contains no extractable text", ErrExtractionFailed)
	}

	return text, nil
}

// normalizeWhitespace collapses whitespace runs while preserving line breaks.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
