package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"sitegrid/internal/parser"
)

// ImportFile 按扩展名分发导入 .csv / .xlsx 文件
//
// sheetName 为空时用文件名作为排期表名（与编辑器上传行为一致）。
func (im *Importer) ImportFile(path, sheetName string) (*Report, error) {
	if sheetName == "" {
		sheetName = filepath.Base(path)
	}

	var table [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		table, err = readXLSXTable(path)
	default:
		table, err = readCSVTable(path)
	}
	if err != nil {
		return nil, err
	}

	return im.ImportTable(table, sheetName)
}

// readCSVTable 读取整个 CSV 为字符串表格
//
// 去掉 UTF-8 BOM；每行列数不强制一致（FieldsPerRecord = -1），
// 真实导出文件的行尾经常缺列。
func readCSVTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if b, err := br.Peek(3); err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return table, nil
}

// readXLSXTable 读取工作簿第一个 Sheet 为字符串表格
func readXLSXTable(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// FindLatestTable 在目录里找最新的排期文件用作种子
//
// 排序规则：文件名里 "day N" 的 N 越大越新，其次比修改时间。
// 目录为空或不存在时返回空串。
func FindLatestTable(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	type candidate struct {
		path  string
		day   int
		mtime int64
	}

	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:  filepath.Join(dir, e.Name()),
			day:   parser.DayFromFilename(e.Name()),
			mtime: info.ModTime().UnixNano(),
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].day != candidates[j].day {
			return candidates[i].day > candidates[j].day
		}
		return candidates[i].mtime > candidates[j].mtime
	})
	return candidates[0].path
}
