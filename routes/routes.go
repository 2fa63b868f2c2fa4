package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/restycailao/CAMSHOP-sub000/controllers"
	"github.com/restycailao/CAMSHOP-sub000/middleware"
)

func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/logout", controllers.Logout)

		api.GET("/products", controllers.GetProducts)
		api.GET("/products/top", controllers.GetTopProducts)
		api.GET("/products/latest", controllers.GetLatestProducts)
		api.GET("/products/:id", controllers.GetProductByID)

		api.GET("/categories", controllers.GetCategories)
		api.GET("/categories/:id", controllers.GetCategoryByID)

		api.GET("/config/paypal", controllers.GetPayPalConfig)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)

			protected.GET("/products/:id/reviews/eligibility", controllers.CheckReviewEligibility)
			protected.POST("/products/:id/reviews", controllers.CreateReview)
			protected.PUT("/products/:id/reviews", controllers.UpdateReview)
			protected.DELETE("/products/:id/reviews", controllers.DeleteReview)

			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders/mine", controllers.GetMyOrders)
			protected.GET("/orders/:id", controllers.GetOrderByID)
			protected.PUT("/orders/:id/pay", controllers.PayOrder)
			protected.PUT("/orders/:id/cancel", controllers.CancelOrder)

			protected.POST("/upload", middleware.AdminMiddleware(), controllers.UploadImage)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/products", controllers.CreateProduct)
				admin.PUT("/products/:id", controllers.UpdateProduct)
				admin.DELETE("/products/:id", controllers.DeleteProduct)

				admin.POST("/categories", controllers.CreateCategory)
				admin.PUT("/categories/:id", controllers.UpdateCategory)
				admin.DELETE("/categories/:id", controllers.DeleteCategory)

				admin.GET("/orders", controllers.GetOrdersAdmin)
				admin.PUT("/orders/:id/deliver", controllers.DeliverOrder)
				admin.PUT("/orders/:id/cancel", controllers.CancelOrderAdmin)

				admin.GET("/users", controllers.GetUsersAdmin)
				admin.GET("/users/:id", controllers.GetUserByIDAdmin)
				admin.PUT("/users/:id", controllers.UpdateUserAdmin)
				admin.DELETE("/users/:id", controllers.DeleteUserAdmin)
			}
		}
	}
}
