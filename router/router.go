package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/controllers"
	"github.com/cityfare/cityfare/middlewares"
	"github.com/cityfare/cityfare/services"
)

func SetupRouter(db *gorm.DB, menuCache *services.MenuCache) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	adminCtrl := controllers.NewAdminController(db)
	menuCtrl := controllers.NewMenuController(db, menuCache)
	orderCtrl := controllers.NewOrderController(db)
	addressCtrl := controllers.NewAddressController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/menu", menuCtrl.PublicList)
	r.GET("/notifications", notificationCtrl.GetRecent)

	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	r.POST("/admin/login", adminCtrl.Login)

	// ----------------------------------------------------------------
	//                      USER ROUTES
	// ----------------------------------------------------------------
	user := r.Group("/")
	user.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("user"))
	{
		user.GET("/profile", userCtrl.GetProfile)
		user.POST("/orders", orderCtrl.CreateOrder)
		user.GET("/orders", orderCtrl.ListMyOrders)
		user.POST("/address", addressCtrl.CreateAddress)
		user.GET("/address", addressCtrl.ListAddresses)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		admin.POST("/create", adminCtrl.CreateAdmin)
		admin.GET("/list", adminCtrl.ListAdmins)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)

		admin.GET("/orders", orderCtrl.ListAllOrders)
		admin.PUT("/orders/:order_id", orderCtrl.UpdateOrderStatus)

		admin.POST("/notifications", notificationCtrl.CreateNotification)
	}

	return r
}
