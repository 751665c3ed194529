package recommender

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// SaveModel persists a snapshot as one atomic unit: the JSON document is
// written to a temp file in the target directory and renamed over the
// destination, so readers only ever see a complete snapshot. Missing
// parent directories are created.
func SaveModel(m *Model, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir %s: %w", dir, err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "model-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace model %s: %w", path, err)
	}
	return nil
}

// LoadModel reconstructs a snapshot from disk. A missing file reports
// domain.ErrModelUnavailable so callers can fall back to the untrained
// (cold start) experience.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrModelUnavailable)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal model %s: %w", path, err)
	}
	if m.Similarity == nil {
		return nil, fmt.Errorf("model %s has no similarity matrix", path)
	}
	m.Similarity.buildIndex()
	return &m, nil
}
