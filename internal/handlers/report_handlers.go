package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSalesSummary returns the day's restaurant sales with an hourly
// breakdown. Query: date (YYYY-MM-DD, default today).
func (h *TransactionHandler) GetSalesSummary(c *gin.Context) {
	summary, err := h.transactionService.GetSalesSummary(c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "GetSalesSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
