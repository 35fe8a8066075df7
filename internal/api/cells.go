package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitegrid/internal/model"
)

// CellRequest 单元格写入请求
//
// task/hours/laborCode 缺省（null）的含义取决于接口：
// PATCH /api/cells 是补丁语义（null 不改字段），bulk 是整格覆盖语义。
type CellRequest struct {
	RowID     int64    `json:"rowId" binding:"required"`
	Day       int      `json:"day" binding:"required,min=1"`
	Task      *string  `json:"task"`
	Hours     *float64 `json:"hours"`
	LaborCode *string  `json:"laborCode"`
}

// UpsertCell 写入单个单元格（补丁语义，"应用到这一天"）
// PATCH /api/cells
func (h *Handler) UpsertCell(c *gin.Context) {
	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := h.store.UpsertCell(req.RowID, req.Day, req.Task, req.Hours, req.LaborCode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存单元格失败"})
		return
	}

	h.store.AppendAudit("editor", "upsert_cell", gin.H{"rowId": req.RowID, "day": req.Day})

	cell, err := h.store.GetCell(req.RowID, req.Day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取单元格失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cell": cell})
}

// DeleteCellRequest 单元格清空请求
type DeleteCellRequest struct {
	RowID int64 `json:"rowId" binding:"required"`
	Day   int   `json:"day" binding:"required,min=1"`
}

// DeleteCell 清空单元格（编辑器置空即删除）
// DELETE /api/cells
func (h *Handler) DeleteCell(c *gin.Context) {
	var req DeleteCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := h.store.DeleteCell(req.RowID, req.Day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除单元格失败"})
		return
	}

	h.store.AppendAudit("editor", "delete_cell", gin.H{"rowId": req.RowID, "day": req.Day})
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CellRangeRequest 区间填充请求（"应用到区间"）
type CellRangeRequest struct {
	RowID     int64    `json:"rowId" binding:"required"`
	StartDay  int      `json:"startDay" binding:"required,min=1"`
	EndDay    int      `json:"endDay" binding:"required,min=1"`
	Task      *string  `json:"task"`
	Hours     *float64 `json:"hours"`
	LaborCode *string  `json:"laborCode"`
}

// UpsertCellRange 把同一组值填到连续的天数区间（单事务）
// POST /api/cells/range
func (h *Handler) UpsertCellRange(c *gin.Context) {
	var req CellRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := h.store.UpsertCellRange(req.RowID, req.StartDay, req.EndDay, req.Task, req.Hours, req.LaborCode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "区间保存失败"})
		return
	}

	h.store.AppendAudit("editor", "upsert_range", gin.H{
		"rowId": req.RowID,
		"start": req.StartDay,
		"end":   req.EndDay,
	})
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// BulkSaveRequest 网格批量保存请求
type BulkSaveRequest struct {
	Edits []model.CellEdit `json:"edits" binding:"required"`
}

// BulkSaveCells 批量保存网格窗口的修改（整格覆盖语义，单事务）
// POST /api/cells/bulk
func (h *Handler) BulkSaveCells(c *gin.Context) {
	var req BulkSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if err := h.store.ApplyCellEdits(req.Edits); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "批量保存失败"})
		return
	}

	h.store.AppendAudit("editor", "bulk_save", gin.H{"edits": len(req.Edits)})
	c.JSON(http.StatusOK, gin.H{"saved": len(req.Edits)})
}
