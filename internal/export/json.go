package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"paperscout/internal/arxiv"
)

// WriteJSON dumps the full paper records as indented JSON.
func WriteJSON(path string, papers *arxiv.Papers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(papers.Items)
}
