package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwapRowsRequest 行交换请求
type SwapRowsRequest struct {
	RowA int64 `json:"rowA" binding:"required"`
	RowB int64 `json:"rowB" binding:"required"`
}

// SwapRows 交换两行的显示顺序（编辑器的上移/下移）
// POST /api/rows/swap
//
// 任一行不存在或两行不在同一张表时为空操作，仍返回 200。
func (h *Handler) SwapRows(c *gin.Context) {
	var req SwapRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := h.store.SwapRowOrder(req.RowA, req.RowB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "行交换失败"})
		return
	}

	h.store.AppendAudit("editor", "swap_rows", gin.H{"rowA": req.RowA, "rowB": req.RowB})
	c.JSON(http.StatusOK, gin.H{"swapped": true})
}
