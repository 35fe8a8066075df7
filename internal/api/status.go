package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized   bool    `json:"initialized"`   // 是否已有数据
	SheetCount    int     `json:"sheetCount"`    // 排期表数量
	ActiveSheetID int64   `json:"activeSheetId"` // 编辑器当前操作的表，0 表示未选择
	DefaultRate   float64 `json:"defaultRate"`   // 每人时单价
	DBOk          bool    `json:"dbOk"`          // 数据库连接状态
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		DBOk: h.store.Ping() == nil,
	}

	count, err := h.store.SheetCount()
	if err == nil {
		resp.SheetCount = count
		resp.Initialized = count > 0
	}
	resp.ActiveSheetID = h.store.ActiveSheetID()
	resp.DefaultRate = h.store.DefaultRate()

	c.JSON(http.StatusOK, resp)
}
