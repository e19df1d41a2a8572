package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/controllers"
	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/services"
	"github.com/bigboyapp/restaurant-backend/utils"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.TenantResolver(db))

	loyaltySvc := services.NewLoyaltyService(db)
	orderSvc := services.NewOrderService(db, loyaltySvc)

	authCtrl := controllers.NewAuthController(db)
	customerCtrl := controllers.NewCustomerController(db)
	guestCtrl := controllers.NewGuestController(db, orderSvc)
	dishCtrl := controllers.NewDishController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	historyCtrl := controllers.NewHistoryController(db)
	membershipCtrl := controllers.NewMembershipController(db)
	mobileCtrl := controllers.NewMobileController(db)
	reviewCtrl := controllers.NewReviewController(db)
	reservationCtrl := controllers.NewReservationController(db)

	r.GET("/health", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "OK", nil)
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh-token", authCtrl.RefreshToken)
		auth.POST("/logout", middlewares.StaffAuth(db), authCtrl.Logout)
		auth.GET("/me", middlewares.StaffAuth(db), authCtrl.Me)
	}

	customer := api.Group("/customer")
	{
		customer.POST("/register", customerCtrl.Register)
		customer.POST("/login", customerCtrl.Login)
		customer.POST("/refresh-token", customerCtrl.RefreshToken)
		customer.GET("/me", middlewares.CustomerAuth(db), customerCtrl.Me)
	}

	guest := api.Group("/guest")
	{
		guest.POST("/login", guestCtrl.Login)
		guest.POST("/refresh-token", guestCtrl.RefreshToken)
		guest.GET("/me", middlewares.GuestAuth(db), guestCtrl.Me)
		guest.POST("/orders", middlewares.GuestAuth(db), guestCtrl.CreateOrders)
		guest.GET("/orders", middlewares.GuestAuth(db), guestCtrl.ListOrders)
	}

	dishes := api.Group("/dishes")
	{
		dishes.GET("", dishCtrl.ListDishes)
		dishes.GET("/:dish_id", dishCtrl.GetDish)
		dishes.POST("", middlewares.StaffAuth(db), middlewares.RequireEmployee(), dishCtrl.CreateDish)
		dishes.PUT("/:dish_id", middlewares.StaffAuth(db), middlewares.RequireEmployee(), dishCtrl.UpdateDish)
		dishes.DELETE("/:dish_id", middlewares.StaffAuth(db), middlewares.RequireEmployee(), dishCtrl.DeleteDish)
	}

	tables := api.Group("/tables", middlewares.StaffAuth(db))
	{
		tables.GET("", middlewares.RequireEmployee(), tableCtrl.ListTables)
		tables.GET("/:table_number", middlewares.RequireEmployee(), tableCtrl.GetTable)
		tables.POST("", middlewares.RequireManager(), tableCtrl.CreateTable)
		tables.PUT("/:table_number", middlewares.RequireManager(), tableCtrl.UpdateTable)
		tables.DELETE("/:table_number", middlewares.RequireManager(), tableCtrl.DeleteTable)
	}

	orders := api.Group("/orders", middlewares.StaffAuth(db), middlewares.RequireEmployee())
	{
		orders.POST("", orderCtrl.CreateOrders)
		orders.GET("", orderCtrl.ListOrders)
		orders.GET("/:order_id", orderCtrl.GetOrder)
		orders.PUT("/:order_id", orderCtrl.UpdateOrder)
		orders.POST("/pay", orderCtrl.PayOrders)
	}

	mobile := api.Group("/mobile")
	{
		mobile.GET("/restaurants", mobileCtrl.ListRestaurants)
		mobile.GET("/restaurants/:restaurant_id", mobileCtrl.GetRestaurant)
		mobile.GET("/restaurants/:restaurant_id/reviews", reviewCtrl.ListRestaurantReviews)
		mobile.POST("/qr/scan", mobileCtrl.ScanQR)
	}

	api.GET("/history", middlewares.CustomerAuth(db), historyCtrl.ListHistory)
	api.GET("/membership", middlewares.CustomerAuth(db), membershipCtrl.GetMembership)
	api.POST("/reviews", middlewares.CustomerAuth(db), reviewCtrl.CreateReview)
	api.POST("/reservations", middlewares.CustomerAuth(db), reservationCtrl.CreateReservation)
	api.GET("/reservations", middlewares.CustomerAuth(db), reservationCtrl.ListReservations)

	return r
}
