package handlers

import (
	"net/http"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves the settled-order history.
type TransactionHandler struct {
	transactionService services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: ts}
}

// GetTransactions lists transactions newest first. Query: table_id, takeaway, page, page_size.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var filters models.TransactionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, err, "GetTransactions")
		return
	}
	filters.Page, filters.PageSize = pageParams(c)

	txns, total, err := h.transactionService.GetTransactions(filters)
	if err != nil {
		respondServiceError(c, err, "GetTransactions")
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     txns,
		"total":    total,
		"page":     filters.Page,
		"pageSize": filters.PageSize,
	})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransaction(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetTransaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}
