package router

import (
	"hotel_pos_backend/internal/authz"
	"hotel_pos_backend/internal/handlers"
	"hotel_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

var requires = middleware.RequireCapability

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes sets up the caller's own account routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupUserRoutes sets up login account management.
func SetupUserRoutes(authenticated *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	userRoutes := authenticated.Group("/auth/users", requires(authz.CapManageUsers))
	{
		userRoutes.GET("", authHandler.GetUsers)
		userRoutes.POST("", authHandler.CreateUser)
		userRoutes.PATCH("/:id", authHandler.UpdateUser)
	}
}

// SetupTableRoutes sets up the restaurant floor: tables, orders and settlement.
func SetupTableRoutes(authenticated *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	tableRoutes := authenticated.Group("/tables")
	{
		tableRoutes.GET("", requires(authz.CapViewTables), orderHandler.GetTables)
		tableRoutes.GET("/:id", requires(authz.CapViewTables), orderHandler.GetTable)

		tableRoutes.POST("", requires(authz.CapManageTables), orderHandler.CreateTable)
		tableRoutes.PATCH("/:id", requires(authz.CapManageTables), orderHandler.UpdateTable)
		tableRoutes.DELETE("/:id", requires(authz.CapManageTables), orderHandler.DeleteTable)

		tableRoutes.POST("/takeaway", requires(authz.CapServeTables), orderHandler.CreateTakeaway)
		tableRoutes.POST("/:id/open", requires(authz.CapServeTables), orderHandler.OpenTable)
		tableRoutes.POST("/:id/items", requires(authz.CapServeTables), orderHandler.AddItem)
		tableRoutes.DELETE("/:id/items/menu/:menuId", requires(authz.CapServeTables), orderHandler.RemoveOneUnit)
		tableRoutes.POST("/:id/send", requires(authz.CapServeTables), orderHandler.SendToKitchen)
		tableRoutes.POST("/:id/call-waiter", requires(authz.CapServeTables), orderHandler.CallWaiter)
		tableRoutes.POST("/:id/move", requires(authz.CapServeTables), orderHandler.MoveTable)

		tableRoutes.PATCH("/:id/items/:itemId/status", requires(authz.CapKitchen), orderHandler.UpdateItemStatus)

		tableRoutes.POST("/:id/request-bill", requires(authz.CapSettleTables), orderHandler.RequestBill)
		tableRoutes.POST("/:id/checkout", requires(authz.CapSettleTables), orderHandler.Checkout)
	}
}

// SetupMenuRoutes sets up the menu catalogue routes.
func SetupMenuRoutes(authenticated *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticated.Group("/menu")
	{
		menuRoutes.GET("", requires(authz.CapViewMenu), menuHandler.GetMenuItems)
		menuRoutes.GET("/:id", requires(authz.CapViewMenu), menuHandler.GetMenuItem)
		menuRoutes.POST("", requires(authz.CapManageMenu), menuHandler.CreateMenuItem)
		menuRoutes.PATCH("/:id", requires(authz.CapManageMenu), menuHandler.UpdateMenuItem)
		menuRoutes.POST("/:id/toggle", requires(authz.CapManageMenu), menuHandler.ToggleAvailability)
		menuRoutes.DELETE("/:id", requires(authz.CapManageMenu), menuHandler.DeleteMenuItem)
	}
}

// SetupTransactionRoutes sets up the settlement history and sales report.
func SetupTransactionRoutes(authenticated *gin.RouterGroup, transactionHandler *handlers.TransactionHandler) {
	transactionRoutes := authenticated.Group("/transactions", requires(authz.CapViewHistory))
	{
		transactionRoutes.GET("", transactionHandler.GetTransactions)
		transactionRoutes.GET("/:id", transactionHandler.GetTransaction)
	}
	authenticated.GET("/reports/sales", requires(authz.CapViewHistory), transactionHandler.GetSalesSummary)
}

// SetupRoomRoutes sets up rooms, stays and invoices.
func SetupRoomRoutes(authenticated *gin.RouterGroup, roomHandler *handlers.RoomHandler) {
	roomRoutes := authenticated.Group("/rooms")
	{
		roomRoutes.GET("", requires(authz.CapViewRooms), roomHandler.GetRooms)
		roomRoutes.GET("/history", requires(authz.CapRoomBilling), roomHandler.GetHistory)
		roomRoutes.GET("/:id", requires(authz.CapViewRooms), roomHandler.GetRoom)
		roomRoutes.GET("/:id/items", requires(authz.CapViewRooms), roomHandler.ListActiveItems)

		roomRoutes.POST("", requires(authz.CapManageRooms), roomHandler.CreateRoom)
		roomRoutes.PATCH("/:id", requires(authz.CapManageRooms), roomHandler.UpdateRoom)

		roomRoutes.POST("/:id/checkin", requires(authz.CapFrontDesk), roomHandler.CheckIn)
		roomRoutes.POST("/:id/items", requires(authz.CapFrontDesk), roomHandler.AddServiceItem)

		roomRoutes.POST("/:id/checkout", requires(authz.CapRoomBilling), roomHandler.Checkout)

		bookingRoutes := roomRoutes.Group("/bookings")
		bookingRoutes.POST("/:bookingId/cancel", requires(authz.CapFrontDesk), roomHandler.CancelBooking)
		bookingRoutes.PATCH("/:bookingId/billing", requires(authz.CapRoomBilling), roomHandler.UpdateBillingDetails)
		bookingRoutes.GET("/:bookingId/invoice", requires(authz.CapRoomBilling), roomHandler.GetInvoice)
	}
}

// SetupMaintenanceRoutes sets up room maintenance tickets.
func SetupMaintenanceRoutes(authenticated *gin.RouterGroup, maintenanceHandler *handlers.MaintenanceHandler) {
	maintenanceRoutes := authenticated.Group("/maintenance")
	{
		maintenanceRoutes.GET("", requires(authz.CapViewRooms), maintenanceHandler.GetLogs)
		maintenanceRoutes.POST("", requires(authz.CapFrontDesk), maintenanceHandler.ReportIssue)
		maintenanceRoutes.PATCH("/:id", requires(authz.CapManageRooms), maintenanceHandler.UpdateLog)
	}
}

// SetupStaffRoutes sets up the staff roster and attendance sheet.
func SetupStaffRoutes(authenticated *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticated.Group("/staff", requires(authz.CapManageStaff))
	{
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.POST("", staffHandler.CreateStaffMember)
		staffRoutes.GET("/:id", staffHandler.GetStaffMember)
		staffRoutes.PATCH("/:id", staffHandler.UpdateStaffMember)
		staffRoutes.DELETE("/:id", staffHandler.DeleteStaffMember)
	}

	attendanceRoutes := authenticated.Group("/attendance", requires(authz.CapManageStaff))
	{
		attendanceRoutes.GET("", staffHandler.GetAttendance)
		attendanceRoutes.POST("", staffHandler.MarkAttendance)
	}
}

// SetupShiftRoutes sets up the caller's own check-in and check-out.
func SetupShiftRoutes(authenticated *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	shiftRoutes := authenticated.Group("/shift", requires(authz.CapOwnShift))
	{
		shiftRoutes.GET("/status", staffHandler.GetShiftStatus)
		shiftRoutes.POST("/start", staffHandler.StartShift)
		shiftRoutes.POST("/end", staffHandler.EndShift)
	}
}

// SetupSettingsRoutes sets up the shared settings. Reading is open to every
// signed-in user so devices can show the restaurant state.
func SetupSettingsRoutes(authenticated *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	settingsRoutes := authenticated.Group("/settings")
	{
		settingsRoutes.GET("", settingsHandler.GetSettings)
		settingsRoutes.PATCH("", requires(authz.CapManageSettings), settingsHandler.UpdateSettings)
	}
}
