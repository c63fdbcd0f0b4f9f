package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"caseboard/config"
	"caseboard/handlers"
	"caseboard/services/jobs"
	"caseboard/services/scoreboard"
	"caseboard/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the case file store
	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize case store: %v", err)
	}

	// Warm the TV ticker cache before serving
	scoreboard.Initialize(cfg)
	scoreboard.Default.Refresh()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files and pages
	e.Static("/static", cfg.StaticDir)
	e.File("/", cfg.StaticDir+"/index.html")
	e.File("/manage", cfg.StaticDir+"/manage.html")
	e.File("/tv", cfg.StaticDir+"/tv.html")
	e.File("/board", cfg.StaticDir+"/board.html")
	e.File("/add", cfg.StaticDir+"/add.html")
	e.File("/edit", cfg.StaticDir+"/edit.html")
	e.File("/favicon.ico", cfg.StaticDir+"/favicon.svg")

	// Case API
	e.GET("/api/cases", handlers.GetCasesHandler)
	e.POST("/api/cases", handlers.CreateCaseHandler)
	e.POST("/api/cases/import", handlers.ImportCasesHandler)
	e.GET("/api/cases/:id", handlers.GetCaseHandler)
	e.PUT("/api/cases/:id", handlers.UpdateCaseHandler)
	e.DELETE("/api/cases/:id", handlers.DeleteCaseHandler)
	e.GET("/api/cases/:id/details", handlers.GetCaseDetailsHandler)
	e.POST("/api/cases/:id/focus", handlers.AddFocusHandler)
	e.POST("/api/cases/:id/deadlines", handlers.SetDeadlinesHandler)
	e.POST("/api/cases/:id/attention/:state", handlers.SetAttentionHandler)
	e.POST("/api/cases/:id/priority/:state", handlers.SetPriorityHandler)
	e.POST("/api/cases/:id/archive/:state", handlers.SetArchiveHandler)
	e.POST("/api/cases/:id/colleague-tasks", handlers.AddColleagueTaskHandler)
	e.POST("/api/cases/:id/colleague-tasks/:task_id/review", handlers.ReviewColleagueTaskHandler)

	// Auxiliary APIs
	e.GET("/api/icd10/:code", handlers.ICD10LookupHandler)
	e.GET("/api/reports/clients.pdf", handlers.ClientReportPDFHandler)
	e.GET("/api/reports/cases.xlsx", handlers.CaseListXLSXHandler)

	// TV board feeds
	e.GET("/tv/cases", handlers.TVCasesHandler)
	e.GET("/tv/cfb", handlers.TVTickerHandler)

	// Background jobs
	jobs.StartScheduler(cfg, storage.Store, scoreboard.Default)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
