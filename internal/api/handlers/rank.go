package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/data"
)

const defaultRankLimit = 10

// RankHandler handles ranking-related requests
type RankHandler struct {
	store *data.Store
}

// NewRankHandler creates a new rank handler
func NewRankHandler(store *data.Store) *RankHandler {
	return &RankHandler{store: store}
}

// RankAssets handles GET /api/v1/rank
func (h *RankHandler) RankAssets(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	date, err := normalizeDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format", nil)
		return
	}

	tbl, _ := h.store.Table()
	ranked := analysis.RankByDeviation(tbl.RecordsOn(date))
	total := len(ranked)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Date:     date,
		Total:    total,
		Rankings: ranked,
	})
}
