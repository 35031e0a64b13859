package handlers

import (
	"net/http"
	"time"

	"hotel_pos_backend/internal/models"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/internal/services"
	"hotel_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// StaffHandler holds the staff and attendance services.
type StaffHandler struct {
	staffService      services.StaffService
	attendanceService services.AttendanceService
	loc               *time.Location
}

// NewStaffHandler creates a new StaffHandler. Date query parameters are read
// in loc.
func NewStaffHandler(ss services.StaffService, as services.AttendanceService, loc *time.Location) *StaffHandler {
	if loc == nil {
		loc = time.Local
	}
	return &StaffHandler{staffService: ss, attendanceService: as, loc: loc}
}

// --- StaffMember Handler Methods ---

func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	members, err := h.staffService.GetStaffMembers()
	if err != nil {
		respondServiceError(c, err, "GetStaffMembers")
		return
	}
	if members == nil {
		members = []models.StaffMember{}
	}
	c.JSON(http.StatusOK, members)
}

func (h *StaffHandler) GetStaffMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	member, err := h.staffService.GetStaffMember(id)
	if err != nil {
		respondServiceError(c, err, "GetStaffMember")
		return
	}
	c.JSON(http.StatusOK, member)
}

// CreateStaffMember handles the creation of a new staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateStaffMember")
		return
	}
	member, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		respondServiceError(c, err, "CreateStaffMember")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateStaffMember")
		return
	}
	member, err := h.staffService.UpdateStaffMember(id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateStaffMember")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.staffService.DeleteStaffMember(id); err != nil {
		respondServiceError(c, err, "DeleteStaffMember")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Attendance Handler Methods ---

// GetAttendance lists attendance records. Query: staff_id, date, or a from/to range.
func (h *StaffHandler) GetAttendance(c *gin.Context) {
	staffID, ok := optionalInt64Query(c, "staff_id")
	if !ok {
		return
	}
	filters := repositories.AttendanceFilters{StaffID: staffID}

	if date := c.Query("date"); date != "" {
		day, ok := h.parseDate(c, "date", date)
		if !ok {
			return
		}
		filters.From, filters.To = &day, &day
	}
	if raw := c.Query("from"); raw != "" {
		from, ok := h.parseDate(c, "from", raw)
		if !ok {
			return
		}
		filters.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, ok := h.parseDate(c, "to", raw)
		if !ok {
			return
		}
		filters.To = &to
	}

	records, err := h.attendanceService.ListAttendance(filters)
	if err != nil {
		respondServiceError(c, err, "GetAttendance")
		return
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *StaffHandler) parseDate(c *gin.Context, name, raw string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format. Use YYYY-MM-DD.", err.Error()))
		return time.Time{}, false
	}
	return t, true
}

// MarkAttendance lets a manager set a staff member's status for a day.
func (h *StaffHandler) MarkAttendance(c *gin.Context) {
	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "MarkAttendance")
		return
	}
	record, err := h.attendanceService.MarkAttendance(req)
	if err != nil {
		respondServiceError(c, err, "MarkAttendance")
		return
	}
	c.JSON(http.StatusOK, record)
}

// --- Shift Handler Methods ---

// StartShift checks the caller in for today. Repeating it is a no-op.
func (h *StaffHandler) StartShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.attendanceService.StartShift(userID)
	if err != nil {
		respondServiceError(c, err, "StartShift")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StaffHandler) EndShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.attendanceService.EndShift(userID)
	if err != nil {
		respondServiceError(c, err, "EndShift")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StaffHandler) GetShiftStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status, err := h.attendanceService.GetShiftStatus(userID)
	if err != nil {
		respondServiceError(c, err, "GetShiftStatus")
		return
	}
	c.JSON(http.StatusOK, status)
}
