package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExtractor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "santander_2025-04_uy$.txt")
	content := "05/04/2025 1234 UBER *TRIP 325,50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))

	text, err := FileExtractor{}.Extract(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestFileExtractorDocumentNotFound(t *testing.T) {
	_, err := FileExtractor{}.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFileExtractorRejectsPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0640))

	_, err := FileExtractor{}.Extract(context.Background(), path, "secret")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestFileExtractorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileExtractor{}.Extract(ctx, "anything.txt", "")
	assert.ErrorIs(t, err, context.Canceled)
}
