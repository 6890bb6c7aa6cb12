package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"asset-dashboard/internal/model"
)

// ReadJSONRows reads a JSON array of objects keyed by source column name, e.g.
//
//	[{"operating_date": "2023-08-01", "time_hr": "2023-08-01 00:00:00", "da_schd": -12.5, ...}]
//
// and flattens it into header + rows so it goes through the same cleaning as
// spreadsheets.
func ReadJSONRows(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var objs []map[string]any
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, fmt.Errorf("failed to parse json dataset: %w", err)
	}

	out := make([][]string, 0, len(objs)+1)
	out = append(out, append([]string(nil), model.SourceColumns...))
	for _, o := range objs {
		row := make([]string, len(model.SourceColumns))
		for i, col := range model.SourceColumns {
			row[i] = jsonCell(o[col])
		}
		out = append(out, row)
	}
	return out, nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
