package handlers

import (
	"net/http"

	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the shared settings aggregate.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GetSettings returns restaurantOpen and lastInvoiceNo.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondServiceError(c, err, "GetSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings changes the fields present in the body.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateSettings")
		return
	}
	settings, err := h.settingsService.UpdateSettings(req)
	if err != nil {
		respondServiceError(c, err, "UpdateSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
