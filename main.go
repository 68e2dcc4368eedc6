package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"projectzurich/api/handlers"
	"projectzurich/api/middleware"
	"projectzurich/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// All state is in-memory and per-process: it is lost on restart, and
	// when several instances serve traffic each reports only its own view.
	eventStore := store.New()

	analyticsHandlers := handlers.NewAnalyticsHandlers(eventStore)
	tableHandlers := handlers.NewTableHandlers(eventStore)
	adminHandlers := handlers.NewAdminHandlers(eventStore)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": fmt.Sprint(recovered),
		})
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", adminHandlers.Health)

		api.GET("/analytics", analyticsHandlers.GetAnalytics)
		api.POST("/analytics", analyticsHandlers.PostAnalytics)

		api.GET("/tables/:table", tableHandlers.GetTable)
		api.POST("/tables/:table", tableHandlers.PostTable)
		api.PATCH("/tables/:table", tableHandlers.UpdateVisitor)
		api.PUT("/tables/:table", tableHandlers.UpdateVisitor)
		api.DELETE("/tables/:table", tableHandlers.DeleteVisitor)

		api.POST("/admin/links", adminHandlers.GenerateLinks)
		api.POST("/visitors/resolve", adminHandlers.ResolveVisitor)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Analytics API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Analytics API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
