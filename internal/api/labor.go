package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sitegrid/internal/labor"
)

// SectionLabor 单个区域的用工汇总
type SectionLabor struct {
	Section string        `json:"section"`
	Summary labor.Summary `json:"summary"`
}

// LaborResponse 用工汇总响应
type LaborResponse struct {
	SheetID  int64          `json:"sheetId"`
	Rate     float64        `json:"rate"`
	Sections []SectionLabor `json:"sections"`
	Total    labor.Summary  `json:"total"`
}

// GetLaborSummary 按区域汇总人数/人时/成本
// GET /api/sheets/:id/labor?rate=
//
// rate 缺省用存储里的 default_rate。纯读操作。
func (h *Handler) GetLaborSummary(c *gin.Context) {
	sheetID, ok := h.sheetIDParam(c)
	if !ok {
		return
	}

	rate := h.store.DefaultRate()
	if v := c.Query("rate"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的单价"})
			return
		}
		rate = parsed
	}

	// 全量区域列表：首个区域标题之前的行（空区域）也要计入合计
	sections, err := h.store.AllSections(sheetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询区域失败"})
		return
	}

	resp := LaborResponse{SheetID: sheetID, Rate: rate, Sections: []SectionLabor{}}
	for _, section := range sections {
		rows, err := h.store.RowsForSection(sheetID, section)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务行失败"})
			return
		}

		var sum labor.Summary
		for _, r := range rows {
			cells, err := h.store.CellsForRow(r.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "查询单元格失败"})
				return
			}
			for _, cell := range cells {
				sum = labor.Accumulate(sum, labor.Summarize(cell.Hours, cell.LaborCode, rate))
			}
		}

		resp.Sections = append(resp.Sections, SectionLabor{Section: section, Summary: sum})
		resp.Total = labor.Accumulate(resp.Total, sum)
	}

	c.JSON(http.StatusOK, resp)
}
