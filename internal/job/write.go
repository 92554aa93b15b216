package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal renders doc as 4-space indented JSON with a trailing newline.
func Marshal(doc Document) ([]byte, error) {
	if doc.Passes == nil {
		doc.Passes = []Pass{}
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("job: encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// Write serializes doc to dir/rdm_denoise_config.json, creating dir when it
// does not exist, and returns the path written.
func Write(dir string, doc Document) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("job: ensure output dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("job: write %s: %w", path, err)
	}
	return path, nil
}
