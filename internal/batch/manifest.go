package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type manifestEntry struct {
	Frame   string `json:"frame"`
	Mesh    string `json:"mesh"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Frames      []manifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json summarizing the run.
func WriteManifest(path string, results []Result) error {
	m := manifest{GeneratedAt: time.Now().UTC(), Frames: make([]manifestEntry, len(results))}
	for i, r := range results {
		entry := manifestEntry{Frame: r.Frame, Success: r.Success, Error: r.Error}
		if r.Success {
			entry.Mesh = strings.TrimSuffix(r.Frame, filepath.Ext(r.Frame)) + ".obj"
		}
		m.Frames[i] = entry
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
