package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/chart"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

const dashboardTemplate = "dashboard.html"

// TableColumns are the columns shown in the dashboard table.
var TableColumns = []string{
	model.ColTimeHour,
	model.ColAssetType,
	model.ColAssetName,
	model.ColDASchedule,
	model.ColDAPrice,
	model.ColRTMetered,
	model.ColRTPrice,
}

// PageConfig holds the static parts of the dashboard page.
type PageConfig struct {
	Title    string
	Footer   string
	PageSize int
}

type dashboardView struct {
	Title  string
	Footer string

	AssetTypes []string
	AssetNames []string
	Dates      []string
	Selection  model.Selection
	Updated    bool

	Columns []string
	Rows    []summary.Row
	Total   int
	Page    int
	Pages   int
	PrevURL string
	NextURL string

	PeakHours     string
	Stats         *analysis.DayStats
	ScheduleTitle string
	PriceTitle    string
	ScheduleURL   string
	PriceURL      string
	ExportCSV     string
	ExportXLSX    string
}

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	svc  *summary.Service
	page PageConfig
}

func NewDashboardHandler(svc *summary.Service, page PageConfig) *DashboardHandler {
	if page.PageSize <= 0 {
		page.PageSize = 27
	}
	return &DashboardHandler{svc: svc, page: page}
}

// Page handles GET /
//
// The table and charts only reflect the selection once the Update button has
// been pressed. Bad or partial selections render an empty table and charts.
func (h *DashboardHandler) Page(c *gin.Context) {
	var q models.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("ignoring bad dashboard query", "query", c.Request.URL.RawQuery, "err", err)
		q = models.DashboardQuery{}
	}
	sel := q.Selection()
	if date, err := normalizeDate(sel.Date); err == nil {
		sel.Date = date
	} else {
		sel.Date = ""
	}

	tbl, _ := h.svc.Store().Table()
	view := dashboardView{
		Title:      h.page.Title,
		Footer:     h.page.Footer,
		AssetTypes: tbl.AssetTypes(),
		AssetNames: tbl.AssetNames(sel.AssetType),
		Dates:      tbl.Dates(),
		Selection:  sel,
		Updated:    q.Update != "",
		Columns:    TableColumns,
		PeakHours:  h.svc.Peaks().String(),
	}

	shown := model.Selection{}
	if view.Updated {
		shown = sel
	}
	res, err := h.svc.Summarize(c.Request.Context(), shown)
	if err != nil {
		slog.Error("summary failed", "selection", shown, "err", err)
		res, _ = h.svc.Summarize(c.Request.Context(), model.Selection{})
	}
	view.Stats = res.Stats
	view.ScheduleTitle = chart.Build(chart.KindSchedule, res).Title
	view.PriceTitle = chart.Build(chart.KindPrice, res).Title

	chartQuery := selectionValues(shown)
	view.ScheduleURL = "/api/v1/charts/" + string(chart.KindSchedule) + ".svg?" + chartQuery.Encode()
	view.PriceURL = "/api/v1/charts/" + string(chart.KindPrice) + ".svg?" + chartQuery.Encode()
	if !res.Empty() {
		csvQ := selectionValues(shown)
		csvQ.Set("format", "csv")
		xlsxQ := selectionValues(shown)
		xlsxQ.Set("format", "xlsx")
		view.ExportCSV = "/api/v1/summary/export?" + csvQ.Encode()
		view.ExportXLSX = "/api/v1/summary/export?" + xlsxQ.Encode()
	}

	h.paginate(&view, res.Rows, q.Page)
	c.HTML(http.StatusOK, dashboardTemplate, view)
}

func (h *DashboardHandler) paginate(view *dashboardView, rows []summary.Row, page int) {
	size := h.page.PageSize
	view.Total = len(rows)
	view.Pages = (len(rows) + size - 1) / size
	if view.Pages == 0 {
		view.Pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > view.Pages {
		page = view.Pages
	}
	view.Page = page

	start := (page - 1) * size
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	view.Rows = rows[start:end]

	pageURL := func(p int) string {
		v := selectionValues(view.Selection)
		v.Set("update", "1")
		v.Set("page", strconv.Itoa(p))
		return "/?" + v.Encode()
	}
	if page > 1 {
		view.PrevURL = pageURL(page - 1)
	}
	if page < view.Pages {
		view.NextURL = pageURL(page + 1)
	}
}

func selectionValues(sel model.Selection) url.Values {
	v := url.Values{}
	if sel.AssetType != "" {
		v.Set("asset_type", sel.AssetType)
	}
	if sel.AssetName != "" {
		v.Set("asset_name", sel.AssetName)
	}
	if sel.Date != "" {
		v.Set("date", sel.Date)
	}
	return v
}
