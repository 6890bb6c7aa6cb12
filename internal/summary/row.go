package summary

import (
	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/model"
)

// Row is one line of the summary table. Hourly rows carry every value;
// synthetic rows leave the cells that do not apply to them nil.
type Row struct {
	Kind model.RowKind `json:"kind"`

	// UniqueID is empty for synthetic rows except Total, which repeats its label.
	UniqueID string `json:"unique_id,omitempty"`
	TimeHour string `json:"time_hr"`

	AssetType string `json:"asset_typ"`
	AssetName string `json:"asset_nm"`

	DASchedule *float64 `json:"da_schd"`
	DAPrice    *float64 `json:"da_lmp_en"`
	RTMetered  *float64 `json:"rt_bll_mtr"`
	RTPrice    *float64 `json:"rt_lmp_en"`
}

// Point is one chart sample: x is the hour ending (1..24).
type Point struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

// Result is the output of summarising one selection.
type Result struct {
	Selection model.Selection `json:"selection"`
	PeakHours string          `json:"peak_hours"`

	Rows []Row `json:"rows"`

	// Series keyed by source column, synthetic rows excluded.
	Schedule map[string][]Point `json:"schedule"`
	Price    map[string][]Point `json:"price"`

	Stats *analysis.DayStats `json:"stats,omitempty"`
}

// Empty reports whether nothing matched the selection.
func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// HourlyRows returns the rows that came from the dataset.
func (r *Result) HourlyRows() []Row {
	if r == nil {
		return nil
	}
	out := make([]Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		if !row.Kind.IsSynthetic() {
			out = append(out, row)
		}
	}
	return out
}

// Find returns the first row of the given kind.
func (r *Result) Find(kind model.RowKind) (Row, bool) {
	if r == nil {
		return Row{}, false
	}
	for _, row := range r.Rows {
		if row.Kind == kind {
			return row, true
		}
	}
	return Row{}, false
}

func ptr(v float64) *float64 { return &v }
