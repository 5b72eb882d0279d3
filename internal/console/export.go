package console

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"navident-console/internal/api"
)

// SaveBlob writes a downloaded export or PDF to dir and returns the path.
// The extension is sniffed from the payload rather than trusted from the
// Content-Type header.
func SaveBlob(dir, baseName string, blob *api.Blob) (string, error) {
	if len(blob.Data) == 0 {
		return "", fmt.Errorf("empty download")
	}

	ext := mimetype.Detect(blob.Data).Extension()
	if ext == "" {
		ext = ".bin"
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s%s", baseName, time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
