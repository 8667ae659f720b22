package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"curtainpro-backend/config"
	"curtainpro-backend/controllers"
	"curtainpro-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowed := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowed = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/search", controllers.SearchCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.GET("/:id/orders", controllers.ListOrdersForCustomer)
		}

		// Working draft routes
		dr := api.Group("/draft")
		{
			dr.GET("", controllers.GetDraft)
			dr.POST("/entries", controllers.AddEntry)
			dr.PUT("/entries/:id", controllers.UpdateEntry)
			dr.DELETE("/entries/:id", controllers.DeleteEntry)
			dr.POST("/entries/:id/edit", controllers.BeginEditEntry)
			dr.POST("/edit/cancel", controllers.CancelEditEntry)
			dr.POST("/reset", controllers.ResetDraft)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.SaveOrder)
			orders.POST("/:id/load", controllers.LoadOrder)
			orders.GET("/:id/pdf", controllers.OrderPDF)
			orders.GET("/:id/xlsx", controllers.OrderXLSX)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
