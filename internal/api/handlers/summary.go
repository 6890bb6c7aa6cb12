package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/chart"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SummaryHandler serves the summary table, its charts and exports.
type SummaryHandler struct {
	svc *summary.Service
}

func NewSummaryHandler(svc *summary.Service) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// GetSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	res, ok := h.summarize(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SummaryResponse{
		Selection: models.SelectionInfo{
			AssetType: res.Selection.AssetType,
			AssetName: res.Selection.AssetName,
			Date:      res.Selection.Date,
		},
		PeakHours: res.PeakHours,
		Rows:      res.Rows,
		Stats:     res.Stats,
		Charts: []chart.Data{
			chart.Build(chart.KindSchedule, res),
			chart.Build(chart.KindPrice, res),
		},
	})
}

// GetChart handles GET /api/v1/charts/:file where file is <kind>.svg or <kind>.png
func (h *SummaryHandler) GetChart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	kind, err := chart.ParseKind(strings.TrimSuffix(file, ext))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_CHART", err.Error(), nil)
		return
	}
	render := chart.RenderSVG
	contentType := "image/svg+xml"
	switch ext {
	case ".svg":
	case ".png":
		render = chart.RenderPNG
		contentType = "image/png"
	default:
		respondError(c, http.StatusNotFound, "UNKNOWN_CHART", fmt.Sprintf("unsupported chart format %q", ext), nil)
		return
	}

	res, ok := h.summarize(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render(&buf, chart.Build(kind, res)); err != nil {
		respondError(c, http.StatusInternalServerError, "CHART_ERROR", err.Error(), nil)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Export handles GET /api/v1/summary/export
func (h *SummaryHandler) Export(c *gin.Context) {
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	format := strings.ToLower(q.Format)
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx", nil)
		return
	}
	sel, ok := selection(c, q.SelectionQuery)
	if !ok {
		return
	}
	if !sel.Complete() {
		respondError(c, http.StatusBadRequest, "INCOMPLETE_SELECTION", "asset_type, asset_name and date are required", nil)
		return
	}

	res, err := h.svc.Summarize(c.Request.Context(), sel)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SUMMARY_ERROR", err.Error(), nil)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv"
	if format == "xlsx" {
		contentType = xlsxContentType
		err = summary.WriteXLSX(&buf, res)
	} else {
		err = summary.WriteCSV(&buf, res)
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(sel, format)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *SummaryHandler) summarize(c *gin.Context) (*summary.Result, bool) {
	var q models.SelectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return nil, false
	}
	sel, ok := selection(c, q)
	if !ok {
		return nil, false
	}
	res, err := h.svc.Summarize(c.Request.Context(), sel)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SUMMARY_ERROR", err.Error(), nil)
		return nil, false
	}
	return res, true
}

func selection(c *gin.Context, q models.SelectionQuery) (model.Selection, bool) {
	sel := q.Selection()
	date, err := normalizeDate(sel.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format", nil)
		return sel, false
	}
	sel.Date = date
	return sel, true
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func exportFilename(sel model.Selection, format string) string {
	name := unsafeFilename.ReplaceAllString(sel.AssetName, "_")
	return fmt.Sprintf("summary_%s_%s.%s", name, sel.Date, format)
}
