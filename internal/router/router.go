package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/handlers"
	"rental_backend/internal/middleware"
	"rental_backend/internal/repositories"
	"rental_backend/internal/services"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	customerRepo := repositories.NewCustomerRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	unitRepo := repositories.NewUnitRepository(db)
	gameRepo := repositories.NewGameRepository(db)
	foodRepo := repositories.NewFoodRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	// Initialize Services
	customerService := services.NewCustomerService(customerRepo, membershipRepo, db)
	membershipService := services.NewMembershipService(membershipRepo, db)
	roomService := services.NewRoomService(roomRepo, unitRepo, reservationRepo, foodRepo, db)
	unitService := services.NewUnitService(unitRepo, roomRepo, gameRepo, db)
	gameService := services.NewGameService(gameRepo, db)
	foodService := services.NewFoodService(foodRepo, db)
	orderFoodService := services.NewOrderFoodService(foodRepo, reservationRepo, db)
	reservationService := services.NewReservationService(reservationRepo, customerRepo, roomRepo, paymentRepo, foodRepo, db)
	userService := services.NewUserService(userRepo, db)
	authService := services.NewAuthService(userRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, reservationRepo, customerRepo, roomRepo, foodRepo)

	// Initialize Handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	roomHandler := handlers.NewRoomHandler(roomService)
	unitHandler := handlers.NewUnitHandler(unitService)
	gameHandler := handlers.NewGameHandler(gameService)
	foodHandler := handlers.NewFoodHandler(foodService, orderFoodService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", middleware.AuthMiddleware(), authHandler.Profile)
	}

	// Reservation writes record the handling staff member when a token is
	// present, so they run behind the optional variant.
	reservations := api.Group("/reservations", middleware.OptionalAuthMiddleware())
	{
		reservations.GET("", reservationHandler.GetReservations)
		reservations.GET("/:id", reservationHandler.GetReservationByID)
		reservations.GET("/:id/with-orders", reservationHandler.GetReservationWithOrders)
		reservations.POST("", reservationHandler.CreateReservation)
		reservations.PUT("/:id", reservationHandler.UpdateReservation)
		reservations.DELETE("/:id", reservationHandler.DeleteReservation)
		reservations.POST("/pay/:id", reservationHandler.PayReservation)
	}

	api.POST("/order-foods", foodHandler.CreateOrderFood)
	api.GET("/order-foods/:reservationId", foodHandler.GetOrderFoodByReservation)

	// The frontend historically used both singular and plural paths.
	for _, prefix := range []string{"/customers", "/customer"} {
		customers := api.Group(prefix)
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.GetCustomers)
			customers.GET("/:id", customerHandler.GetCustomerByID)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
		}
	}

	membership := api.Group("/membership")
	{
		membership.POST("", membershipHandler.CreateMembership)
		membership.GET("", membershipHandler.GetMemberships)
		membership.GET("/:id", membershipHandler.GetMembershipByID)
		membership.PUT("/:id", membershipHandler.UpdateMembership)
		membership.DELETE("/:id", membershipHandler.DeleteMembership)
	}

	for _, prefix := range []string{"/rooms", "/room"} {
		rooms := api.Group(prefix)
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("", roomHandler.GetRooms)
			rooms.GET("/with-price", roomHandler.GetRoomsWithPrice)
			rooms.GET("/:id", roomHandler.GetRoomByID)
			rooms.PUT("/:id", roomHandler.UpdateRoom)
			rooms.DELETE("/:id", roomHandler.DeleteRoom)
		}
	}

	unit := api.Group("/unit")
	{
		unit.POST("", unitHandler.CreateUnit)
		unit.GET("", unitHandler.GetUnits)
		unit.POST("/games", unitHandler.InstallGame)
		unit.DELETE("/games/:id", unitHandler.UninstallGame)
		unit.GET("/:id", unitHandler.GetUnitByID)
		unit.GET("/:id/games", unitHandler.GetUnitGames)
		unit.PUT("/:id", unitHandler.UpdateUnit)
		unit.DELETE("/:id", unitHandler.DeleteUnit)
	}

	games := api.Group("/games")
	{
		games.POST("", gameHandler.CreateGame)
		games.GET("", gameHandler.GetGames)
		games.GET("/:id", gameHandler.GetGameByID)
		games.PUT("/:id", gameHandler.UpdateGame)
		games.DELETE("/:id", gameHandler.DeleteGame)
	}

	foods := api.Group("/foods")
	{
		foods.POST("", foodHandler.CreateFood)
		foods.GET("", foodHandler.GetFoods)
		foods.GET("/:id", foodHandler.GetFoodByID)
		foods.PUT("/:id", foodHandler.UpdateFood)
		foods.DELETE("/:id", foodHandler.DeleteFood)
	}

	// Staff account management is owner-only.
	users := api.Group("/users", middleware.AuthMiddleware(), middleware.RoleAuthMiddleware("owner"))
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.GetUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/recent", dashboardHandler.GetRecentActivity)
		dashboard.GET("/active-rooms", dashboardHandler.GetActiveRooms)
		dashboard.GET("/revenue", dashboardHandler.GetRevenueDetail)
		dashboard.GET("/revenue-trend", dashboardHandler.GetRevenueTrend)
	}
}
