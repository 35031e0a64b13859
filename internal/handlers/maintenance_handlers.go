package handlers

import (
	"net/http"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler serves room maintenance tickets.
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(ms services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: ms}
}

// GetLogs lists tickets newest first. Query: room_id, status.
func (h *MaintenanceHandler) GetLogs(c *gin.Context) {
	roomID, ok := optionalInt64Query(c, "room_id")
	if !ok {
		return
	}
	filters := repositories.MaintenanceFilters{RoomID: roomID}
	if raw := c.Query("status"); raw != "" {
		status := models.MaintenanceStatus(raw)
		filters.Status = &status
	}

	logs, err := h.maintenanceService.GetLogs(filters)
	if err != nil {
		respondServiceError(c, err, "GetMaintenanceLogs")
		return
	}
	if logs == nil {
		logs = []models.RoomMaintenanceLog{}
	}
	c.JSON(http.StatusOK, logs)
}

func (h *MaintenanceHandler) ReportIssue(c *gin.Context) {
	var req services.ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ReportIssue")
		return
	}
	entry, err := h.maintenanceService.ReportIssue(req)
	if err != nil {
		respondServiceError(c, err, "ReportIssue")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MaintenanceHandler) UpdateLog(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMaintenanceLog")
		return
	}
	entry, err := h.maintenanceService.UpdateLog(id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateMaintenanceLog")
		return
	}
	c.JSON(http.StatusOK, entry)
}
