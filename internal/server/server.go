package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"sitegrid/internal/api"
	"sitegrid/internal/config"
	"sitegrid/internal/importer"
	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "sitegrid.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 库为空时用数据目录里最新的排期文件做种子
	if cfg.Data.AutoSeed {
		autoSeed(sqliteStore, cfg, dataDir)
	}

	apiHandler := api.NewHandler(sqliteStore, cfg)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes(devMode)

	return s
}

// autoSeed 空库自动导入种子文件
//
// 失败只打日志：没有种子不妨碍用户手动上传。
func autoSeed(st *store.Store, cfg *config.AppConfig, dataDir string) {
	count, err := st.SheetCount()
	if err != nil || count > 0 {
		return
	}

	candidate := importer.FindLatestTable(dataDir)
	if candidate == "" {
		return
	}

	im := importer.NewImporter(st, importer.Options{
		Policy: parser.SectionPolicy{
			Canonical: cfg.Import.CanonicalSections,
			Aliases:   cfg.Import.SectionAliases,
		},
		Strict: cfg.Import.StrictOrphans,
	})

	report, err := im.ImportFile(candidate, "")
	if err != nil {
		log.Printf("种子文件导入失败 (%s): %v", filepath.Base(candidate), err)
		return
	}

	_ = st.SetActiveSheetID(report.SheetID)
	st.AppendAudit("system", "seed_import", map[string]interface{}{
		"file":  filepath.Base(candidate),
		"rows":  report.Rows,
		"cells": report.Cells,
	})
	log.Printf("已导入种子文件 %s：%d 行 %d 格", filepath.Base(candidate), report.Rows, report.Cells)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用embed的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}
