package api

import (
	"github.com/gin-gonic/gin"

	"sitegrid/internal/config"
	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

// Handler 编辑器 API 处理器
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, cfg *config.AppConfig) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Handler{
		store:     store,
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 排期表
	router.GET("/sheets", h.ListSheets)
	router.POST("/sheets/select", h.SelectSheet)
	router.GET("/sheets/:id/outline", h.GetOutline)
	router.GET("/sheets/:id/grid", h.GetGrid)
	router.GET("/sheets/:id/labor", h.GetLaborSummary)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 数据导入
	router.POST("/import", h.Import)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 单元格编辑
	router.PATCH("/cells", h.UpsertCell)
	router.DELETE("/cells", h.DeleteCell)
	router.POST("/cells/range", h.UpsertCellRange)
	router.POST("/cells/bulk", h.BulkSaveCells)

	// 行重排
	router.POST("/rows/swap", h.SwapRows)
}

// sectionPolicy 把配置口径转换成解析器的区域收敛策略
func (h *Handler) sectionPolicy() parser.SectionPolicy {
	return parser.SectionPolicy{
		Canonical: h.cfg.Import.CanonicalSections,
		Aliases:   h.cfg.Import.SectionAliases,
	}
}
