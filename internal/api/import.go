package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"sitegrid/internal/importer"
	"sitegrid/internal/parser"
)

// Import 导入宽表文件（.csv / .xlsx）
// POST /api/import
//
// multipart 字段：file 必填；sheetName 缺省用文件名；strict 覆盖配置口径。
// 排期表级别的表格很小，导入在亚秒内完成，同步返回结果即可。
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]

	// 保存到临时目录
	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("sitegrid_import_%d_%s", time.Now().Unix(), uploadedFile.Filename))

	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	sheetName := c.PostForm("sheetName")
	if sheetName == "" {
		sheetName = uploadedFile.Filename
	}
	strict := h.cfg.Import.StrictOrphans
	if v, ok := c.GetPostForm("strict"); ok {
		strict = v == "true"
	}

	im := importer.NewImporter(h.store, importer.Options{
		Policy: h.sectionPolicy(),
		Strict: strict,
	})

	report, err := im.ImportFile(tempFilePath, sheetName)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrMalformedInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "文件格式不正确：至少需要 2 列"})
		case errors.Is(err, parser.ErrNoDayColumns):
			c.JSON(http.StatusBadRequest, gin.H{"error": "表头中找不到任何 Day N 列"})
		case errors.Is(err, importer.ErrOrphanRow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "存在不属于任何区域的数据行（严格模式）"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "导入失败: " + err.Error()})
		}
		return
	}

	h.store.AppendAudit("editor", "import", gin.H{
		"sheetId":   report.SheetID,
		"sheetName": report.SheetName,
		"rows":      report.Rows,
		"cells":     report.Cells,
	})

	// 首次导入自动设为当前表
	if h.store.ActiveSheetID() == 0 {
		_ = h.store.SetActiveSheetID(report.SheetID)
	}

	c.JSON(http.StatusOK, report)
}
