package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sitegrid/internal/model"
)

// ListSheets 列出所有排期表
// GET /api/sheets
func (h *Handler) ListSheets(c *gin.Context) {
	sheets, err := h.store.ListSheets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询排期表失败"})
		return
	}
	if sheets == nil {
		sheets = []*model.SheetInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

// SelectSheetRequest 切换当前排期表请求
type SelectSheetRequest struct {
	SheetID int64 `json:"sheetId" binding:"required"`
}

// SelectSheet 切换编辑器当前操作的排期表
// POST /api/sheets/select
func (h *Handler) SelectSheet(c *gin.Context) {
	var req SelectSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if _, err := h.store.GetSheet(req.SheetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排期表不存在"})
		return
	}

	if err := h.store.SetActiveSheetID(req.SheetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存当前排期表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeSheetId": req.SheetID})
}

// OutlineRow 大纲中的一行
type OutlineRow struct {
	ID       int64  `json:"id"`
	RowOrder int    `json:"rowOrder"`
	Preview  string `json:"preview"` // "(empty)" 或 "Day N: 任务名"
}

// OutlineSubsection 大纲中的行标签分组
type OutlineSubsection struct {
	Name string       `json:"name"`
	Rows []OutlineRow `json:"rows"`
}

// OutlineSection 大纲中的区域分组
type OutlineSection struct {
	Name        string              `json:"name"`
	Subsections []OutlineSubsection `json:"subsections"`
}

// GetOutline 排期表大纲：区域 → 行标签 → 行（编辑器的级联选择器）
// GET /api/sheets/:id/outline
func (h *Handler) GetOutline(c *gin.Context) {
	sheetID, ok := h.sheetIDParam(c)
	if !ok {
		return
	}

	sections, err := h.store.Sections(sheetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询区域失败"})
		return
	}

	outline := make([]OutlineSection, 0, len(sections))
	for _, section := range sections {
		subsections, err := h.store.Subsections(sheetID, section)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询行标签失败"})
			return
		}

		sec := OutlineSection{Name: section}
		for _, sub := range subsections {
			rows, err := h.store.RowsForSubsection(sheetID, section, sub)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务行失败"})
				return
			}

			group := OutlineSubsection{Name: sub}
			for _, r := range rows {
				preview, err := h.store.CellPreview(r.ID)
				if err != nil {
					preview = "(empty)"
				}
				group.Rows = append(group.Rows, OutlineRow{
					ID:       r.ID,
					RowOrder: r.RowOrder,
					Preview:  preview,
				})
			}
			sec.Subsections = append(sec.Subsections, group)
		}
		outline = append(outline, sec)
	}

	c.JSON(http.StatusOK, gin.H{"sheetId": sheetID, "sections": outline})
}

// GridCell 网格中的一个单元格
type GridCell struct {
	Day       int      `json:"day"`
	Task      *string  `json:"task"`
	Hours     *float64 `json:"hours"`
	LaborCode *string  `json:"laborCode"`
}

// GridRow 网格中的一行
type GridRow struct {
	ID         int64      `json:"id"`
	Section    string     `json:"section"`
	Subsection string     `json:"subsection"`
	RowOrder   int        `json:"rowOrder"`
	Cells      []GridCell `json:"cells"` // 只含窗口内的非空单元格
}

// GetGrid 网格窗口：某区域（或整表）在一段天数内的行×天数据
// GET /api/sheets/:id/grid?section=&start=&end=
func (h *Handler) GetGrid(c *gin.Context) {
	sheetID, ok := h.sheetIDParam(c)
	if !ok {
		return
	}

	startDay, _ := strconv.Atoi(c.Query("start"))
	endDay, _ := strconv.Atoi(c.Query("end"))
	if startDay <= 0 || endDay <= 0 {
		// 未指定窗口：使用表内数据边界，空表回落到 (1, 90)
		min, max, err := h.store.DayBounds(sheetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询天数范围失败"})
			return
		}
		if startDay <= 0 {
			startDay = min
		}
		if endDay <= 0 {
			endDay = max
		}
	}
	if endDay < startDay {
		startDay, endDay = endDay, startDay
	}

	var rows []*model.Row
	var err error
	if section := c.Query("section"); section != "" {
		rows, err = h.store.RowsForSection(sheetID, section)
	} else {
		rows, err = h.store.ListRows(sheetID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务行失败"})
		return
	}

	grid := make([]GridRow, 0, len(rows))
	for _, r := range rows {
		row := GridRow{
			ID:         r.ID,
			Section:    r.Section,
			Subsection: r.Subsection,
			RowOrder:   r.RowOrder,
			Cells:      []GridCell{},
		}
		cells, err := h.store.CellsForRow(r.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询单元格失败"})
			return
		}
		for _, cell := range cells {
			if cell.Day < startDay || cell.Day > endDay {
				continue
			}
			row.Cells = append(row.Cells, GridCell{
				Day:       cell.Day,
				Task:      cell.Task,
				Hours:     cell.Hours,
				LaborCode: cell.LaborCode,
			})
		}
		grid = append(grid, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"sheetId":  sheetID,
		"startDay": startDay,
		"endDay":   endDay,
		"rows":     grid,
	})
}

// sheetIDParam 解析路径里的排期表 id 并校验存在性
func (h *Handler) sheetIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的排期表 ID"})
		return 0, false
	}
	if _, err := h.store.GetSheet(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排期表不存在"})
		return 0, false
	}
	return id, true
}
