package handlers

import (
	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// normalizeDate accepts anything the loader accepts and returns YYYY-MM-DD.
// An empty date stays empty.
func normalizeDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := data.ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	return t.Format(model.DateLayout), nil
}
