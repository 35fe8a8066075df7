package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sitegrid/internal/exporter"
)

// ExportRequest 导出请求
type ExportRequest struct {
	SheetID      int64  `json:"sheetId" binding:"required"`
	StartDay     int    `json:"start"`        // 0 表示自动
	EndDay       int    `json:"end"`          // 0 表示自动
	Format       string `json:"format"`       // csv（默认）/ xlsx
	HeaderStyle  string `json:"headerStyle"`  // 缺省用配置口径
	SectionOrder string `json:"sectionOrder"` // 缺省用配置口径
}

// Export 导出排期表，生成一次性下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	sheet, err := h.store.GetSheet(req.SheetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排期表不存在"})
		return
	}

	if req.HeaderStyle == "" {
		req.HeaderStyle = h.cfg.Export.HeaderStyle
	}
	headerStyle, err := exporter.ParseHeaderStyle(req.HeaderStyle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表头风格"})
		return
	}

	if req.SectionOrder == "" {
		req.SectionOrder = h.cfg.Export.SectionOrder
	}
	sectionOrder, err := exporter.ParseSectionOrder(req.SectionOrder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的区域排序"})
		return
	}

	table, err := exporter.NewExporter(h.store).BuildTable(exporter.Options{
		SheetID:      req.SheetID,
		StartDay:     req.StartDay,
		EndDay:       req.EndDay,
		HeaderStyle:  headerStyle,
		SectionOrder: sectionOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	format := req.Format
	if format == "" {
		format = "csv"
	}

	filePath := filepath.Join(os.TempDir(), fmt.Sprintf("sitegrid_export_%s.%s", uuid.New().String(), format))
	fileName := fmt.Sprintf("export_%d_%d.%s", sheet.ID, time.Now().Unix(), format)

	switch format {
	case "csv":
		f, err := os.Create(filePath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
		err = exporter.WriteCSV(f, table)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
	case "xlsx":
		f, err := exporter.WriteXLSX(table, sheet.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成工作簿失败"})
			return
		}
		err = f.SaveAs(filePath)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的导出格式"})
		return
	}

	token := h.downloads.put(filePath, fileName, sheet.ID, 10*time.Minute)

	h.store.AppendAudit("editor", "export", gin.H{
		"sheetId": sheet.ID,
		"format":  format,
		"start":   req.StartDay,
		"end":     req.EndDay,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"downloadUrl": "/api/export/download/" + token,
		"fileName":    fileName,
	})
}

// DownloadExport 一次性下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	contentType := "text/csv"
	if filepath.Ext(item.filePath) == ".xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", contentType)
	c.File(item.filePath)

	// 一次性：下载后立即作废并清理临时文件
	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
