package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/data"
)

// DatasetHandler serves dropdown options and dataset lifecycle endpoints.
type DatasetHandler struct {
	store *data.Store
}

func NewDatasetHandler(store *data.Store) *DatasetHandler {
	return &DatasetHandler{store: store}
}

// Health handles GET /health
func (h *DatasetHandler) Health(c *gin.Context) {
	tbl, gen := h.store.Table()
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:     "ok",
		Rows:       tbl.Len(),
		Generation: gen,
		LoadedAt:   h.store.LoadedAt(),
	})
}

// ListOptions handles GET /api/v1/options
func (h *DatasetHandler) ListOptions(c *gin.Context) {
	var q models.OptionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	tbl, _ := h.store.Table()
	c.JSON(http.StatusOK, models.OptionsResponse{
		AssetTypes: tbl.AssetTypes(),
		AssetNames: tbl.AssetNames(q.AssetType),
		Dates:      tbl.Dates(),
	})
}

// Reload handles POST /api/v1/reload
func (h *DatasetHandler) Reload(c *gin.Context) {
	if err := h.store.Reload(); err != nil {
		respondError(c, http.StatusInternalServerError, "RELOAD_ERROR", err.Error(), map[string]interface{}{
			"path": h.store.Path(),
		})
		return
	}
	tbl, gen := h.store.Table()
	c.JSON(http.StatusOK, models.ReloadResponse{
		Status:     "ok",
		Rows:       tbl.Len(),
		Generation: gen,
	})
}
