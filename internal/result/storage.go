package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// OutputName is the default analysis file name for a run started at now.
func OutputName(now time.Time) string {
	return fmt.Sprintf("n_classes_analysis_%d.txt", now.Unix())
}

func NewRunID() string {
	return uuid.NewString()
}

// WriteCostFile writes rows to path, creating parent directories.
func WriteCostFile(path string, rows []CostRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCostRows(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadCostFile(path string) ([]CostRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	rows, err := ReadCostRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// MetaPath is where the run metadata for an analysis file is stored.
func MetaPath(output string) string {
	return output + ".meta.json"
}

func WriteRunMeta(path string, meta *RunMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling meta: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadRunMeta(path string) (*RunMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing meta: %w", err)
	}
	return &meta, nil
}
