package models

import (
	"time"

	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/chart"
	"asset-dashboard/internal/summary"
)

// HealthResponse reports the loaded dataset.
type HealthResponse struct {
	Status     string    `json:"status"`
	Rows       int       `json:"rows"`
	Generation uint64    `json:"generation"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// OptionsResponse lists dropdown values.
type OptionsResponse struct {
	AssetTypes []string `json:"asset_types"`
	AssetNames []string `json:"asset_names"`
	Dates      []string `json:"dates"`
}

// SelectionInfo echoes the filters a summary was computed for.
type SelectionInfo struct {
	AssetType string `json:"asset_type"`
	AssetName string `json:"asset_name"`
	Date      string `json:"date"`
}

// SummaryResponse is the table plus both charts for one selection.
type SummaryResponse struct {
	Selection SelectionInfo      `json:"selection"`
	PeakHours string             `json:"peak_hours"`
	Rows      []summary.Row      `json:"rows"`
	Stats     *analysis.DayStats `json:"stats,omitempty"`
	Charts    []chart.Data       `json:"charts"`
}

// RankResponse represents the response from ranking assets
type RankResponse struct {
	Date     string                 `json:"date"`
	Total    int                    `json:"total"`
	Rankings []analysis.RankedAsset `json:"rankings"`
}

// ReloadResponse reports the table after a reload.
type ReloadResponse struct {
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	Generation uint64 `json:"generation"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
