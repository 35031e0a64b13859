package router

import (
	"database/sql"
	"net/http"
	"time"

	"hotel_pos_backend/internal/handlers"
	"hotel_pos_backend/internal/middleware"
	"hotel_pos_backend/internal/repositories"
	"hotel_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Services bundles every service the HTTP layer calls.
type Services struct {
	Orders       services.OrderService
	Menu         services.MenuService
	Transactions services.TransactionService
	Rooms        services.RoomService
	Maintenance  services.MaintenanceService
	Settings     services.SettingsService
	Staff        services.StaffService
	Attendance   services.AttendanceService
	Auth         services.AuthService
}

// NewServices wires repositories into services over db. menuCache may be nil.
func NewServices(db *sql.DB, tokens services.TokenIssuer, menuCache services.MenuCache, loc *time.Location) *Services {
	runner := repositories.NewTxRunner(db)

	// Initialize Repositories
	authRepo := repositories.NewAuthRepository()
	orderRepo := repositories.NewOrderRepository()
	menuRepo := repositories.NewMenuRepository()
	txnRepo := repositories.NewTransactionRepository()
	bookingRepo := repositories.NewBookingRepository()
	roomRepo := repositories.NewRoomRepository(bookingRepo)
	maintenanceRepo := repositories.NewMaintenanceRepository()
	settingRepo := repositories.NewSettingRepository()
	staffRepo := repositories.NewStaffRepository()

	// Initialize Services
	return &Services{
		Orders:       services.NewOrderService(runner, orderRepo, menuRepo, txnRepo, settingRepo),
		Menu:         services.NewMenuService(runner, menuRepo, menuCache),
		Transactions: services.NewTransactionService(runner, txnRepo, loc),
		Rooms:        services.NewRoomService(runner, roomRepo, bookingRepo, settingRepo),
		Maintenance:  services.NewMaintenanceService(runner, roomRepo, maintenanceRepo),
		Settings:     services.NewSettingsService(runner, settingRepo),
		Staff:        services.NewStaffService(runner, staffRepo),
		Attendance:   services.NewAttendanceService(runner, staffRepo, authRepo, loc),
		Auth:         services.NewAuthService(runner, authRepo, staffRepo, tokens),
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svcs *Services, tokens middleware.TokenValidator, loc *time.Location) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svcs.Auth)
	orderHandler := handlers.NewOrderHandler(svcs.Orders)
	menuHandler := handlers.NewMenuHandler(svcs.Menu)
	transactionHandler := handlers.NewTransactionHandler(svcs.Transactions)
	roomHandler := handlers.NewRoomHandler(svcs.Rooms)
	maintenanceHandler := handlers.NewMaintenanceHandler(svcs.Maintenance)
	staffHandler := handlers.NewStaffHandler(svcs.Staff, svcs.Attendance, loc)
	settingsHandler := handlers.NewSettingsHandler(svcs.Settings)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupUserRoutes(authenticated, authHandler)
		SetupTableRoutes(authenticated, orderHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupTransactionRoutes(authenticated, transactionHandler)
		SetupRoomRoutes(authenticated, roomHandler)
		SetupMaintenanceRoutes(authenticated, maintenanceHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupShiftRoutes(authenticated, staffHandler)
		SetupSettingsRoutes(authenticated, settingsHandler)
	}
}
