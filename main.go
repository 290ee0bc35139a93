package main

import (
	"log"
	"os"

	"github.com/Tibluka/voicetaskapi/handlers"
	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/middleware"
	"github.com/Tibluka/voicetaskapi/mongodb"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
}

func main() {
	if err := logger.InitFromEnv(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if err := mongodb.InitMongoDB(); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongodb.CloseMongoDB()

	// Wire stores and services
	spendingStore := mongodb.NewSpendingStore()
	profileStore := mongodb.NewProfileStore()

	projects := services.NewProjectService(profileStore, spendingStore)
	spendings := services.NewSpendingService(spendingStore, projects)
	bills := services.NewFixedBillService(profileStore)

	handlers.Spendings = spendings
	handlers.Projects = projects
	handlers.Bills = bills
	handlers.Summary = services.NewSummaryService(spendings, bills, profileStore)
	handlers.Queries = services.NewQueryOrchestrator(spendings, profileStore)
	handlers.Profiles = profileStore

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"}) // Only trust local proxies

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Authentication middleware
	router.Use(middleware.AuthMiddleware)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/spendings", handlers.InsertSpending)
		api.POST("/spendings/consult", handlers.ConsultSpending)
		api.DELETE("/spendings/:id", handlers.RemoveSpending)

		api.GET("/projects", handlers.ListProjects)
		api.POST("/projects", handlers.CreateProject)
		api.GET("/projects/:id", handlers.GetProjectDetails)
		api.PUT("/projects/:id", handlers.UpdateProject)
		api.DELETE("/projects/:id", handlers.DeleteProject)

		api.GET("/fixed-bills", handlers.ListFixedBills)
		api.POST("/fixed-bills", handlers.CreateFixedBill)
		api.GET("/fixed-bills/summary/:yearMonth", handlers.GetFixedBillsSummary)
		api.GET("/fixed-bills/:id", handlers.GetFixedBill)
		api.PUT("/fixed-bills/:id", handlers.UpdateFixedBill)
		api.DELETE("/fixed-bills/:id", handlers.CancelFixedBill)
		api.POST("/fixed-bills/:id/pay", handlers.PayFixedBill)
		api.POST("/fixed-bills/:id/unpay", handlers.UnpayFixedBill)

		api.GET("/summary/current", handlers.GetCurrentMonthSummary)
		api.GET("/summary/:yearMonth", handlers.GetMonthlySummary)

		api.GET("/config", handlers.GetConfig)
		api.POST("/config", handlers.CreateConfig)
		api.PUT("/config", handlers.UpdateConfig)

		api.POST("/execute-query", handlers.ExecuteQuery)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
