package main

import (
	"catalog/config"
	"catalog/database"
	"catalog/handlers"
	"catalog/service"
	"catalog/storage"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	// Load environment variables and parse CLI flags
	config.ParseFlags()

	logFile, err := setupLogging(config.Settings.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Configure log format
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Catalog starting up...")

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize the image bucket
	imageStore, err := storage.NewDiskStore(config.Settings.UploadDir, config.Settings.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize services
	service.InitServices(database.DB, imageStore)

	// Seed the settings row from configured brand defaults when empty
	if err := service.GlobalServices.Settings.SeedDefaults(config.Settings.CatalogTitle, config.Settings.ContactPhone); err != nil {
		log.Printf("Warning: Failed to seed settings defaults: %v", err)
	}

	if config.Settings.AdminUser == "" || config.Settings.AdminPass == "" {
		log.Println("WARNING: ADMIN_USER/ADMIN_PASS not set; /admin is open")
	}

	// Set Gin mode
	if config.Settings.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Direct Gin logs to the configured log file
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()
	gin.DisableConsoleColor()

	// Create router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Storefront UI from the embedded FS
	webFS, err := fs.Sub(staticFiles, "static/web")
	if err != nil {
		log.Fatalf("Failed to create static file system: %v", err)
	}
	r.StaticFS("/web", http.FS(webFS))

	// Admin UI behind the basic-auth gate
	adminFS, err := fs.Sub(staticFiles, "static/admin")
	if err != nil {
		log.Fatalf("Failed to create admin file system: %v", err)
	}
	admin := r.Group("/admin", handlers.AdminGate(config.Settings.AdminUser, config.Settings.AdminPass))
	admin.StaticFS("/", http.FS(adminFS))

	// Uploaded images served straight from the bucket directory
	r.Static("/uploads", imageStore.Root())

	// Root path redirect
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/web/index.html")
	})

	// API routes
	api := r.Group("/api")
	{
		// Item routes
		api.GET("/items", handlers.ListItems)
		api.POST("/items", handlers.CreateItem)
		api.PUT("/items/:id", handlers.UpdateItem)
		api.DELETE("/items/:id", handlers.DeleteItem)
		api.POST("/items/save", handlers.SaveItem)

		// Settings routes
		api.GET("/settings", handlers.GetSettings)
		api.POST("/settings/update", handlers.UpdateSettings)

		// Upload route
		api.POST("/upload", handlers.UploadImage)

		// Health and metrics routes
		api.GET("/health", handlers.HealthCheck)
		api.GET("/metrics", handlers.GetMetrics)
	}

	// Prometheus scrape endpoint
	r.GET("/metrics", handlers.GetPrometheusMetrics)

	// Find an available port
	port := findAvailablePort(config.Settings.Port)
	if port != config.Settings.Port {
		log.Printf("Default port %d is busy. Switched to %d", config.Settings.Port, port)
	}

	// Create HTTP server
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on http://127.0.0.1:%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for OS interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Received interrupt signal")

	log.Println("Catalog shutting down...")

	// Close database connection
	if err := database.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	// Gracefully shut down HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// findAvailablePort searches for an available port
func findAvailablePort(startPort int) int {
	for port := startPort; port < startPort+100; port++ {
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port
		}
	}
	log.Fatal("No available ports found")
	return startPort
}
