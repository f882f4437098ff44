// Package extract holds the boundaries to document-extraction collaborators:
// plain-text statement dumps and the AI statement parser.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Extraction errors.
var (
	// ErrExtraction wraps any failure to turn a document into text.
	ErrExtraction = errors.New("extraction failed")
	// ErrDocumentNotFound indicates the source document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrWrongPassword indicates the document is protected and the supplied
	// password did not open it.
	ErrWrongPassword = errors.New("wrong document password")
	// ErrAIService indicates a transport, auth or response failure from the
	// AI extraction service.
	ErrAIService = errors.New("ai extraction service failed")
)

// TextExtractor turns a source document into plain statement text.
type TextExtractor interface {
	Extract(ctx context.Context, path, password string) (string, error)
}

// FileExtractor reads statements that were already dumped to plain text,
// one transaction per line. It is the manual-entry half of ingestion.
type FileExtractor struct{}

// Extract reads the whole file. Text dumps carry no protection, so a
// non-empty password is rejected rather than silently ignored.
func (FileExtractor) Extract(ctx context.Context, path, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if password != "" {
		return "", fmt.Errorf("extract %s: %w: text dumps are not encrypted", path, ErrWrongPassword)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("extract %s: %w", path, ErrDocumentNotFound)
		}
		return "", fmt.Errorf("extract %s: %w: %v", path, ErrExtraction, err)
	}
	return string(data), nil
}
