package handlers

import (
	"net/http"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves restaurant tables and the orders placed on them.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// GetTables lists every table with its order lines, takeaways last.
func (h *OrderHandler) GetTables(c *gin.Context) {
	tables, err := h.orderService.GetTables()
	if err != nil {
		respondServiceError(c, err, "GetTables")
		return
	}
	if tables == nil {
		tables = []models.Table{}
	}
	c.JSON(http.StatusOK, tables)
}

// GetTable returns one table.
func (h *OrderHandler) GetTable(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	table, err := h.orderService.GetTable(tableID)
	if err != nil {
		respondServiceError(c, err, "GetTable")
		return
	}
	c.JSON(http.StatusOK, table)
}

// CreateTable adds a physical table.
func (h *OrderHandler) CreateTable(c *gin.Context) {
	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateTable")
		return
	}
	table, err := h.orderService.CreateTable(req)
	if err != nil {
		respondServiceError(c, err, "CreateTable")
		return
	}
	c.JSON(http.StatusCreated, table)
}

// UpdateTable changes a table's capacity.
func (h *OrderHandler) UpdateTable(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateTable")
		return
	}
	table, err := h.orderService.UpdateTable(tableID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateTable")
		return
	}
	c.JSON(http.StatusOK, table)
}

// DeleteTable removes an EMPTY table.
func (h *OrderHandler) DeleteTable(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.DeleteTable(tableID); err != nil {
		respondServiceError(c, err, "DeleteTable")
		return
	}
	c.Status(http.StatusNoContent)
}

// OpenTable seats guests.
func (h *OrderHandler) OpenTable(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.OpenTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "OpenTable")
		return
	}
	table, err := h.orderService.OpenTable(tableID, req.Guests)
	if err != nil {
		respondServiceError(c, err, "OpenTable")
		return
	}
	c.JSON(http.StatusOK, table)
}

// AddItem appends one unit of a menu item.
func (h *OrderHandler) AddItem(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddItem")
		return
	}
	table, err := h.orderService.AddItem(tableID, req)
	if err != nil {
		respondServiceError(c, err, "AddItem")
		return
	}
	c.JSON(http.StatusOK, table)
}

// RemoveOneUnit takes one unit of a not-yet-fired menu item off the order.
func (h *OrderHandler) RemoveOneUnit(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	menuID, ok := idParam(c, "menuId")
	if !ok {
		return
	}
	table, err := h.orderService.RemoveOneUnit(tableID, menuID)
	if err != nil {
		respondServiceError(c, err, "RemoveOneUnit")
		return
	}
	c.JSON(http.StatusOK, table)
}

// SendToKitchen fires every ORDERING line. Nothing to send is still a 200.
func (h *OrderHandler) SendToKitchen(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := h.orderService.SendToKitchen(tableID)
	if err != nil {
		respondServiceError(c, err, "SendToKitchen")
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateItemStatus advances one order line.
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	var req services.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateItemStatus")
		return
	}
	table, err := h.orderService.AdvanceItemStatus(tableID, itemID, req.Status)
	if err != nil {
		respondServiceError(c, err, "UpdateItemStatus")
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *OrderHandler) CallWaiter(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	table, err := h.orderService.CallWaiter(tableID)
	if err != nil {
		respondServiceError(c, err, "CallWaiter")
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *OrderHandler) RequestBill(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	table, err := h.orderService.RequestBill(tableID)
	if err != nil {
		respondServiceError(c, err, "RequestBill")
		return
	}
	c.JSON(http.StatusOK, table)
}

// MoveTable relocates the party at :id to the table in the body.
func (h *OrderHandler) MoveTable(c *gin.Context) {
	fromID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.MoveTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "MoveTable")
		return
	}
	result, err := h.orderService.MoveTable(fromID, req.ToTableID)
	if err != nil {
		respondServiceError(c, err, "MoveTable")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Checkout settles the table into a transaction.
func (h *OrderHandler) Checkout(c *gin.Context) {
	tableID, ok := idParam(c, "id")
	if !ok {
		return
	}
	txn, err := h.orderService.Checkout(tableID)
	if err != nil {
		respondServiceError(c, err, "Checkout")
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *OrderHandler) CreateTakeaway(c *gin.Context) {
	var req services.CreateTakeawayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateTakeaway")
		return
	}
	table, err := h.orderService.CreateTakeaway(req)
	if err != nil {
		respondServiceError(c, err, "CreateTakeaway")
		return
	}
	c.JSON(http.StatusCreated, table)
}
