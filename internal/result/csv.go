package result

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// FailedMarker is the second field of a row whose evaluation failed.
const FailedMarker = "FAILED"

// WriteCostRows writes one CSV row per configuration:
// config followed by its costs, or config, FAILED, reason.
func WriteCostRows(w io.Writer, rows []CostRow) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		record := []string{row.Config}
		if row.Ok() {
			for _, c := range row.Costs {
				record = append(record, strconv.FormatFloat(c, 'g', -1, 64))
			}
		} else {
			record = append(record, FailedMarker, row.Err)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Config, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCostRows parses a CSV written by WriteCostRows.
func ReadCostRows(r io.Reader) ([]CostRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []CostRow
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if len(record) == 0 || record[0] == "" {
			return nil, fmt.Errorf("line %d: missing configuration field", line)
		}
		row := CostRow{Config: record[0]}
		if len(record) >= 2 && record[1] == FailedMarker {
			reason := ""
			if len(record) > 2 {
				reason = record[2]
			}
			row.CostResult = Failure(reason)
			rows = append(rows, row)
			continue
		}
		costs := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			c, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing cost %q: %w", line, field, err)
			}
			costs = append(costs, c)
		}
		row.CostResult = Success(costs)
		rows = append(rows, row)
	}
	return rows, nil
}
