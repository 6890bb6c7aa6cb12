package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/api"
	"asset-dashboard/internal/api/handlers"
	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const genQuery = "asset_type=GEN&asset_name=GEN_A&date=2023-08-01"

// newTestRouter serves GEN_A on two days and LOAD_B on the first. GEN_A
// volumes are h and 2h, prices 20+h and 30+h for hour h.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	day1 := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	var recs []model.HourlyRecord
	add := func(day time.Time, typ, name string, f func(h int) (float64, float64, float64, float64)) {
		for h := 0; h < 24; h++ {
			da, daPrice, rt, rtPrice := f(h)
			recs = append(recs, model.HourlyRecord{
				UniqueID:      len(recs) + 1,
				OperatingDate: day,
				TimeHour:      day.Add(time.Duration(h) * time.Hour),
				AssetType:     typ,
				AssetName:     name,
				DASchedule:    da,
				DAPrice:       daPrice,
				RTMetered:     rt,
				RTPrice:       rtPrice,
			})
		}
	}
	gen := func(h int) (float64, float64, float64, float64) {
		return float64(h), float64(20 + h), float64(2 * h), float64(30 + h)
	}
	add(day1, "GEN", "GEN_A", gen)
	add(day1, "LOAD", "LOAD_B", func(int) (float64, float64, float64, float64) { return 1, 40, 1, 41 })
	add(day2, "GEN", "GEN_A", gen)

	tbl, err := data.NewTable(recs)
	require.NoError(t, err)
	svc := summary.NewService(
		data.NewStaticStore(tbl),
		summary.New(summary.DefaultPeakWindow()),
		summary.NewMemoryCache(time.Minute),
	)
	r, err := api.NewRouter(api.Options{
		Service: svc,
		Page:    handlers.PageConfig{Title: "PCI August Asset Data Dashboard", Footer: "2023 Kareem Dibs", PageSize: 27},
	})
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(t), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[models.HealthResponse](t, w)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 72, body.Rows)
	assert.Equal(t, uint64(1), body.Generation)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOptions(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/options")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[models.OptionsResponse](t, w)
	assert.Equal(t, []string{"GEN", "LOAD"}, all.AssetTypes)
	assert.Equal(t, []string{"GEN_A", "LOAD_B"}, all.AssetNames)
	assert.Equal(t, []string{"2023-08-01", "2023-08-02"}, all.Dates)

	w = do(t, r, http.MethodGet, "/api/v1/options?asset_type=LOAD")
	require.Equal(t, http.StatusOK, w.Code)
	load := decode[models.OptionsResponse](t, w)
	assert.Equal(t, []string{"LOAD_B"}, load.AssetNames)
	assert.Equal(t, []string{"GEN", "LOAD"}, load.AssetTypes)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/summary?"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[models.SummaryResponse](t, w)

	require.Len(t, body.Rows, 27)
	assert.Equal(t, "2023-08-01 00:00:00", body.Rows[0].TimeHour)
	assert.Equal(t, "07:00-23:00", body.PeakHours)

	total, on, off := body.Rows[24], body.Rows[25], body.Rows[26]
	assert.Equal(t, model.RowTotal, total.Kind)
	assert.Equal(t, "Total", total.UniqueID)
	assert.InDelta(t, 276, *total.DASchedule, 1e-9)
	assert.InDelta(t, 552, *total.RTMetered, 1e-9)
	assert.InDelta(t, 31.5, *total.DAPrice, 1e-9)
	assert.InDelta(t, 41.5, *total.RTPrice, 1e-9)

	assert.Equal(t, model.RowOnPeak, on.Kind)
	assert.InDelta(t, 34.5, *on.DAPrice, 1e-9)
	assert.InDelta(t, 44.5, *on.RTPrice, 1e-9)
	assert.Nil(t, on.DASchedule)

	assert.Equal(t, model.RowOffPeak, off.Kind)
	assert.InDelta(t, 25.5, *off.DAPrice, 1e-9)
	assert.InDelta(t, 35.5, *off.RTPrice, 1e-9)

	require.NotNil(t, body.Stats)
	assert.InDelta(t, 276, body.Stats.DeviationMWh, 1e-9)

	require.Len(t, body.Charts, 2)
	assert.Equal(t, "Hourly Data for GEN_A on 2023-08-01 (da_schd vs rt_bll_mtr)", body.Charts[0].Title)
	assert.Equal(t, "Hourly Data for GEN_A on 2023-08-01 (da_lmp_en vs rt_lmp_en)", body.Charts[1].Title)
	require.Len(t, body.Charts[0].Series, 2)
	assert.Len(t, body.Charts[0].Series[0].Points, 24)
	assert.Equal(t, 1, body.Charts[0].Series[0].Points[0].X)
	assert.Equal(t, 24, body.Charts[0].Series[0].Points[23].X)
}

func TestSummaryEmptySelections(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	for _, q := range []string{
		"",
		"asset_type=GEN",
		"asset_type=GEN&asset_name=GEN_A",
		"asset_type=GEN&asset_name=LOAD_B&date=2023-08-01",
		"asset_type=GEN&asset_name=GEN_A&date=2023-09-01",
	} {
		w := do(t, r, http.MethodGet, "/api/v1/summary?"+q)
		require.Equal(t, http.StatusOK, w.Code, q)
		body := decode[models.SummaryResponse](t, w)
		assert.Empty(t, body.Rows, q)
		assert.Equal(t, "Hourly Data for Asset (da_schd vs rt_bll_mtr)", body.Charts[0].Title, q)
		assert.Equal(t, "Hourly Data for Asset (da_lmp_en vs rt_lmp_en)", body.Charts[1].Title, q)
	}
}

func TestSummaryBadDate(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/summary?asset_type=GEN&asset_name=GEN_A&date=yesterday")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "INVALID_DATE", body.Error.Code)
}

func TestCharts(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	tests := []struct {
		target      string
		status      int
		contentType string
	}{
		{"/api/v1/charts/schedule.svg?" + genQuery, http.StatusOK, "image/svg+xml"},
		{"/api/v1/charts/price.svg?" + genQuery, http.StatusOK, "image/svg+xml"},
		{"/api/v1/charts/price.svg", http.StatusOK, "image/svg+xml"},
		{"/api/v1/charts/schedule.png?" + genQuery, http.StatusOK, "image/png"},
		{"/api/v1/charts/volume.svg", http.StatusNotFound, ""},
		{"/api/v1/charts/schedule.gif", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		w := do(t, r, http.MethodGet, tt.target)
		require.Equal(t, tt.status, w.Code, tt.target)
		if tt.contentType != "" {
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"), tt.target)
			assert.NotZero(t, w.Body.Len(), tt.target)
		}
	}

	w := do(t, r, http.MethodGet, "/api/v1/charts/schedule.svg?"+genQuery)
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestChartsSingleHour(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	tbl, err := data.NewTable([]model.HourlyRecord{{
		UniqueID: 1, OperatingDate: day, TimeHour: day.Add(13 * time.Hour),
		AssetType: "GEN", AssetName: "GEN_A", DASchedule: 4, DAPrice: 30, RTMetered: 5, RTPrice: 31,
	}})
	require.NoError(t, err)
	svc := summary.NewService(data.NewStaticStore(tbl), summary.New(summary.DefaultPeakWindow()), nil)
	r, err := api.NewRouter(api.Options{Service: svc, Page: handlers.PageConfig{Title: "t"}})
	require.NoError(t, err)

	for _, target := range []string{
		"/api/v1/charts/schedule.svg?" + genQuery,
		"/api/v1/charts/price.svg?" + genQuery,
		"/api/v1/charts/price.png?" + genQuery,
	} {
		w := do(t, r, http.MethodGet, target)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", target, w.Body.String())
		assert.NotZero(t, w.Body.Len(), target)
	}
}

func TestExport(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/summary/export?"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="summary_GEN_A_2023-08-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Price (ON PEAK)")

	w = do(t, r, http.MethodGet, "/api/v1/summary/export?format=xlsx&"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("summary")
	require.NoError(t, err)
	assert.Len(t, rows, 28) // header + 27

	w = do(t, r, http.MethodGet, "/api/v1/summary/export?format=pdf&"+genQuery)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/summary/export?asset_type=GEN")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INCOMPLETE_SELECTION", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestRank(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/rank?date=2023-08-01")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[models.RankResponse](t, w)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Rankings, 2)
	assert.Equal(t, "GEN_A", body.Rankings[0].AssetName)
	assert.Equal(t, 1, body.Rankings[0].Rank)
	assert.Equal(t, "LOAD_B", body.Rankings[1].AssetName)

	w = do(t, r, http.MethodGet, "/api/v1/rank?date=2023-08-01&limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode[models.RankResponse](t, w)
	assert.Equal(t, 2, body.Total)
	assert.Len(t, body.Rankings, 1)

	w = do(t, r, http.MethodGet, "/api/v1/rank")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestReloadStaticStore(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/reload")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[models.ReloadResponse](t, w)
	assert.Equal(t, 72, body.Rows)
	assert.Equal(t, uint64(1), body.Generation)
}

func TestDashboardPage(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "PCI August Asset Data Dashboard")
	assert.Contains(t, page, "2023 Kareem Dibs")
	assert.Contains(t, page, "No data")
	assert.Contains(t, page, `<option value="LOAD_B">`)

	// selection without pressing Update leaves the table empty
	w = do(t, r, http.MethodGet, "/?"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data")

	w = do(t, r, http.MethodGet, "/?update=1&"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	page = w.Body.String()
	assert.NotContains(t, page, "No data")
	assert.Contains(t, page, "Price (ON PEAK)")
	assert.Contains(t, page, "Price (OFF PEAK)")
	assert.Contains(t, page, "34.5")
	assert.Contains(t, page, `<option value="GEN_A" selected>`)
	// the type filter narrows the name dropdown
	assert.NotContains(t, page, `<option value="LOAD_B">`)
	assert.Contains(t, page, "page 1 of 1 (27 rows)")

	// out of range pages clamp
	w = do(t, r, http.MethodGet, "/?update=1&page=9&"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "page 1 of 1")

	// garbage never produces an error page
	w = do(t, r, http.MethodGet, "/?update=1&page=abc&date=not-a-date")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data")
}

func TestDashboardPaging(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]model.HourlyRecord, 0, 24)
	for h := 0; h < 24; h++ {
		recs = append(recs, model.HourlyRecord{
			UniqueID: h + 1, OperatingDate: day, TimeHour: day.Add(time.Duration(h) * time.Hour),
			AssetType: "GEN", AssetName: "GEN_A", DAPrice: 10, RTPrice: 11,
		})
	}
	tbl, err := data.NewTable(recs)
	require.NoError(t, err)
	svc := summary.NewService(data.NewStaticStore(tbl), summary.New(summary.DefaultPeakWindow()), nil)
	r, err := api.NewRouter(api.Options{Service: svc, Page: handlers.PageConfig{Title: "t", PageSize: 10}})
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, "/?update=1&page=2&"+genQuery)
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "page 2 of 3 (27 rows)")
	assert.Contains(t, page, "prev")
	assert.Contains(t, page, "next")
	assert.Contains(t, page, "2023-08-01 10:00:00")
	assert.NotContains(t, page, "2023-08-01 09:00:00")
}

func TestNotFoundAndCORS(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[models.ErrorResponse](t, w).Error.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/summary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
