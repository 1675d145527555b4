package routes

import (
	"github.com/gin-gonic/gin"

	"meatadmin/controllers"
	"meatadmin/database"
	"meatadmin/middleware"
	"meatadmin/realtime"
)

type Deps struct {
	Store     *database.Store
	JWTSecret []byte
	Hub       *realtime.Hub

	Auth      *controllers.AuthController
	Products  *controllers.ProductController
	Orders    *controllers.OrderController
	Users     *controllers.UserController
	Dashboard *controllers.DashboardController
	Reports   *controllers.ReportController
	Wallet    *controllers.WalletController
}

func Register(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestID())

	api := r.Group("/api")
	{
		api.POST("/signin", d.Auth.SignIn)
		api.POST("/signup", d.Auth.SignUp)
		api.POST("/logout", d.Auth.Logout)

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(d.Store, d.JWTSecret))
		{
			admin.GET("/dashboard", d.Dashboard.Get)
			admin.GET("/ws", d.Hub.Handle)

			admin.GET("/products", d.Products.List)
			admin.POST("/products", d.Products.Create)
			admin.PUT("/products/:id", d.Products.Update)
			admin.DELETE("/products/:id", d.Products.Delete)

			admin.GET("/orders", d.Orders.List)
			admin.GET("/orders/:id", d.Orders.Get)
			admin.PUT("/orders/:id/advance", d.Orders.Advance)

			admin.GET("/users", d.Users.List)
			admin.PUT("/users/:id/wallet", d.Users.AdjustWallet)

			admin.GET("/wallet", d.Wallet.Overview)

			admin.GET("/reports", d.Reports.Get)
			admin.GET("/reports/export", d.Reports.Export)
		}
	}
}
