package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nav-banner/backend/internal/api"
	"github.com/nav-banner/backend/internal/config"
	"github.com/nav-banner/backend/internal/display"
	"github.com/nav-banner/backend/internal/layout"
	"github.com/nav-banner/backend/internal/session"
	"github.com/nav-banner/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "NavBannerServer.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Resolve the display scale provider once, at startup
	var scale display.Provider
	if cfg.Display.Scale > 0 {
		scale = display.Fixed(cfg.Display.Scale)
	} else {
		scale = display.FromEnv()
	}

	// Load abbreviation rules
	rules := layout.DefaultRules()
	if cfg.Rules.AbbreviationRulesPath != "" {
		loaded, err := layout.LoadRules(cfg.Rules.AbbreviationRulesPath)
		if err != nil {
			fmt.Printf("Warning: failed to load abbreviation rules: %v\n", err)
		} else {
			rules = loaded
			fmt.Printf("Abbreviation rules loaded from %s\n", cfg.Rules.AbbreviationRulesPath)
		}
	}
	engine := layout.NewEngine(rules)

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Initialize session manager
	sessionMgr := session.NewManagerWithTempDir(scale, cfg.GetTempDir())

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessionMgr.CleanupOldSessions(time.Duration(cfg.Processing.SessionTimeoutMinutes) * time.Minute)
		}
	}()

	// Initialize API handler
	h := api.NewHandler(fileStore, sessionMgr, engine, Version)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/status") || path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
	}))

	if cfg.Processing.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Processing.CompressionLevel,
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// API Routes
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", h.HandleHealth)

	// Route document management
	apiGroup.POST("/routes/upload", h.HandleUploadRoute)
	apiGroup.GET("/routes/recent", h.HandleRecentRoutes)
	apiGroup.GET("/routes/:id", h.HandleGetRoute)
	apiGroup.DELETE("/routes/:id", h.HandleDeleteRoute)

	// Parse management
	apiGroup.POST("/parse", h.HandleStartParse)
	apiGroup.GET("/parse/:sessionId/status", h.HandleParseStatus)
	apiGroup.POST("/parse/:sessionId/keepalive", h.HandleSessionKeepAlive)
	apiGroup.GET("/parse/:sessionId/instructions", h.HandleGetInstructions)
	apiGroup.GET("/parse/:sessionId/components", h.HandleGetComponents)
	apiGroup.GET("/parse/:sessionId/components/counts", h.HandleGetComponentCounts)
	apiGroup.GET("/parse/:sessionId/archive", h.HandleExportArchive)

	// Archive decode
	apiGroup.POST("/archive/decode", h.HandleDecodeArchive)

	// Layout
	apiGroup.POST("/instructions/abbreviate", h.HandleAbbreviate)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Nav Banner Server                               ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Scale:      %-45d║\n", scale.Scale())
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
