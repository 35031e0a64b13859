package handlers

import (
	"net/http"
	"strconv"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetMenuItems lists the catalogue. Query: category, available, search.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var filters repositories.MenuFilters
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if search := c.Query("search"); search != "" {
		filters.SearchTerm = &search
	}
	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondBindError(c, err, "GetMenuItems")
			return
		}
		filters.AvailableOnly = available
	}

	items, err := h.menuService.GetMenuItems(filters)
	if err != nil {
		respondServiceError(c, err, "GetMenuItems")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.menuService.GetMenuItem(itemID)
	if err != nil {
		respondServiceError(c, err, "GetMenuItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateMenuItem")
		return
	}
	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		respondServiceError(c, err, "CreateMenuItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMenuItem")
		return
	}
	item, err := h.menuService.UpdateMenuItem(itemID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateMenuItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.menuService.ToggleAvailability(itemID)
	if err != nil {
		respondServiceError(c, err, "ToggleAvailability")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.menuService.DeleteMenuItem(itemID); err != nil {
		respondServiceError(c, err, "DeleteMenuItem")
		return
	}
	c.Status(http.StatusNoContent)
}
