package handlers

import (
	"net/http"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RoomHandler serves rooms, their stays and the invoices issued for them.
type RoomHandler struct {
	roomService services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rs services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rs}
}

// roomCheckoutRequest names the stay being settled alongside its billing details.
type roomCheckoutRequest struct {
	BookingID int64 `json:"bookingId" binding:"required"`
	services.BillingDetailsRequest
}

// --- Room Handler Methods ---

func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.roomService.GetRooms()
	if err != nil {
		respondServiceError(c, err, "GetRooms")
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom returns a room with its booking history and current stay.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		respondServiceError(c, err, "GetRoom")
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateRoom")
		return
	}
	room, err := h.roomService.CreateRoom(req)
	if err != nil {
		respondServiceError(c, err, "CreateRoom")
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateRoom")
		return
	}
	room, err := h.roomService.UpdateRoom(roomID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateRoom")
		return
	}
	c.JSON(http.StatusOK, room)
}

// --- Stay Handler Methods ---

// CheckIn starts a stay in an AVAILABLE room.
func (h *RoomHandler) CheckIn(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CheckIn")
		return
	}
	booking, err := h.roomService.CheckIn(roomID, req)
	if err != nil {
		respondServiceError(c, err, "CheckIn")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// AddServiceItem charges an item to the room's active stay.
func (h *RoomHandler) AddServiceItem(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.AddServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddServiceItem")
		return
	}
	item, err := h.roomService.AddServiceItem(roomID, req)
	if err != nil {
		respondServiceError(c, err, "AddServiceItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RoomHandler) ListActiveItems(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := h.roomService.ListActiveItems(roomID)
	if err != nil {
		respondServiceError(c, err, "ListActiveItems")
		return
	}
	if result.Items == nil {
		result.Items = []models.RoomServiceItem{}
	}
	c.JSON(http.StatusOK, result)
}

// Checkout settles a stay and returns its totals.
func (h *RoomHandler) Checkout(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req roomCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RoomCheckout")
		return
	}
	result, err := h.roomService.Checkout(roomID, req.BookingID, req.BillingDetailsRequest)
	if err != nil {
		respondServiceError(c, err, "RoomCheckout")
		return
	}
	c.JSON(http.StatusOK, result)
}

// --- Booking Handler Methods ---

func (h *RoomHandler) CancelBooking(c *gin.Context) {
	bookingID, ok := idParam(c, "bookingId")
	if !ok {
		return
	}
	booking, err := h.roomService.CancelBooking(bookingID)
	if err != nil {
		respondServiceError(c, err, "CancelBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBillingDetails edits invoice metadata, before or after checkout.
func (h *RoomHandler) UpdateBillingDetails(c *gin.Context) {
	bookingID, ok := idParam(c, "bookingId")
	if !ok {
		return
	}
	var req services.BillingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateBillingDetails")
		return
	}
	booking, err := h.roomService.UpdateBillingDetails(bookingID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateBillingDetails")
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *RoomHandler) GetInvoice(c *gin.Context) {
	bookingID, ok := idParam(c, "bookingId")
	if !ok {
		return
	}
	invoice, err := h.roomService.GetInvoice(bookingID)
	if err != nil {
		respondServiceError(c, err, "GetInvoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetHistory lists checked-out stays, most recent checkout first.
func (h *RoomHandler) GetHistory(c *gin.Context) {
	page, pageSize := pageParams(c)
	bookings, total, err := h.roomService.GetHistory(page, pageSize)
	if err != nil {
		respondServiceError(c, err, "GetHistory")
		return
	}
	if bookings == nil {
		bookings = []models.RoomBooking{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     bookings,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
