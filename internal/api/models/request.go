package models

import (
	"strings"

	"asset-dashboard/internal/model"
)

// SelectionQuery carries the three dashboard filters.
type SelectionQuery struct {
	AssetType string `form:"asset_type"`
	AssetName string `form:"asset_name"`
	Date      string `form:"date"` // YYYY-MM-DD
}

// Selection trims the query into a model selection.
func (q SelectionQuery) Selection() model.Selection {
	return model.Selection{
		AssetType: strings.TrimSpace(q.AssetType),
		AssetName: strings.TrimSpace(q.AssetName),
		Date:      strings.TrimSpace(q.Date),
	}
}

// DashboardQuery is the form submitted by the Update button.
type DashboardQuery struct {
	SelectionQuery
	Update string `form:"update"` // set by the Update button; empty means not pressed yet
	Page   int    `form:"page"`   // 1-based
}

// OptionsQuery narrows the asset name list to one type.
type OptionsQuery struct {
	AssetType string `form:"asset_type"`
}

// ExportQuery selects the summary to export and the file format.
type ExportQuery struct {
	SelectionQuery
	Format string `form:"format"` // "csv" (default) or "xlsx"
}

// RankRequest represents a request to rank assets on one day
type RankRequest struct {
	Date  string `form:"date" binding:"required"`
	Limit int    `form:"limit,omitempty"` // default: 10
}
