// Package params reads evaluator parameter files: whitespace-delimited
// numeric rows whose first row is metadata.
package params

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func Load(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading params %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]float64
	header := true
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if header {
			header = false
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("params %s line %d: %q is not a number", path, n, field)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading params %s: %w", path, err)
	}
	return rows, nil
}
