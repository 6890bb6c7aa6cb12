package model

// RowKind labels a summary table row.
// Keep these values stable; they are written to the time_hr cell of synthetic rows.
type RowKind string

const (
	RowHourly  RowKind = "HOURLY"
	RowTotal   RowKind = "Total"
	RowOnPeak  RowKind = "Price (ON PEAK)"
	RowOffPeak RowKind = "Price (OFF PEAK)"
)

// IsSynthetic reports whether the row was computed rather than loaded.
func (k RowKind) IsSynthetic() bool {
	switch k {
	case RowTotal, RowOnPeak, RowOffPeak:
		return true
	default:
		return false
	}
}
