package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigResponse 运行时配置响应
type ConfigResponse struct {
	DefaultRate   float64 `json:"defaultRate"`
	ActiveSheetID int64   `json:"activeSheetId"`
	HeaderStyle   string  `json:"headerStyle"`
	SectionOrder  string  `json:"sectionOrder"`
	StrictOrphans bool    `json:"strictOrphans"`
}

// GetConfig 获取运行时配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		DefaultRate:   h.store.DefaultRate(),
		ActiveSheetID: h.store.ActiveSheetID(),
		HeaderStyle:   h.cfg.Export.HeaderStyle,
		SectionOrder:  h.cfg.Export.SectionOrder,
		StrictOrphans: h.cfg.Import.StrictOrphans,
	})
}

// UpdateConfigRequest 运行时配置更新请求
type UpdateConfigRequest struct {
	DefaultRate *float64 `json:"defaultRate"`
}

// UpdateConfig 更新运行时配置（目前只有每人时单价落库）
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if req.DefaultRate != nil {
		if *req.DefaultRate < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "单价不能为负数"})
			return
		}
		if err := h.store.SetDefaultRate(*req.DefaultRate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存配置失败"})
			return
		}
		h.store.AppendAudit("editor", "set_rate", gin.H{"rate": *req.DefaultRate})
	}

	c.JSON(http.StatusOK, gin.H{"defaultRate": h.store.DefaultRate()})
}
