package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signalnine/swarmeval/internal/params"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.dat")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    [][]float64
	}{
		{"skips header", "3 2\n0.1 0.2\n0.3 0.4\n", [][]float64{{0.1, 0.2}, {0.3, 0.4}}},
		{"header only", "3 2\n", nil},
		{"comments and blanks", "# generated\n\n1\n 2.5\t-1 # tail\n", [][]float64{{2.5, -1}}},
		{"ragged rows", "meta\n1 2 3\n4\n", [][]float64{{1, 2, 3}, {4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.Load(writeParams(t, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRejectsNonNumeric(t *testing.T) {
	_, err := params.Load(writeParams(t, "header\n1 two 3\n"))
	if err == nil {
		t.Error("expected error for non-numeric field")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := params.Load("nonexistent.dat")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
