package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sitegrid/internal/exporter"
	"sitegrid/internal/store"
)

type exportOptions struct {
	sheetName    string
	sheetID      int64
	out          string
	dbPath       string
	startDay     int
	endDay       int
	headerStyle  string
	sectionOrder string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "从数据库导出宽表 CSV / XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.sheetName == "" && opts.sheetID == 0 {
				return fmt.Errorf("需要 --sheet 或 --sheet-id")
			}
			return runExport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.sheetName, "sheet", "", "排期表名称")
	cmd.Flags().Int64Var(&opts.sheetID, "sheet-id", 0, "排期表 ID")
	cmd.Flags().StringVar(&opts.out, "out", "", "输出文件 (.csv / .xlsx)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "data/sitegrid.db", "数据库文件路径")
	cmd.Flags().IntVar(&opts.startDay, "start", 0, "起始天数（0 表示自动）")
	cmd.Flags().IntVar(&opts.endDay, "end", 0, "结束天数（0 表示自动）")
	cmd.Flags().StringVar(&opts.headerStyle, "header-style", "", "表头风格: repeat / numbered")
	cmd.Flags().StringVar(&opts.sectionOrder, "section-order", "", "区域排序: name / import")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts exportOptions) error {
	st, err := store.New(opts.dbPath)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}
	defer st.Close()

	sheetID := opts.sheetID
	if sheetID == 0 {
		sheetID, err = st.SheetIDByName(opts.sheetName)
		if err != nil {
			return fmt.Errorf("找不到排期表 %q", opts.sheetName)
		}
	}

	headerStyle, err := exporter.ParseHeaderStyle(opts.headerStyle)
	if err != nil {
		return err
	}
	sectionOrder, err := exporter.ParseSectionOrder(opts.sectionOrder)
	if err != nil {
		return err
	}

	table, err := exporter.NewExporter(st).BuildTable(exporter.Options{
		SheetID:      sheetID,
		StartDay:     opts.startDay,
		EndDay:       opts.endDay,
		HeaderStyle:  headerStyle,
		SectionOrder: sectionOrder,
	})
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}

	switch strings.ToLower(filepath.Ext(opts.out)) {
	case ".xlsx":
		f, err := exporter.WriteXLSX(table, "")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(opts.out); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}
	default:
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("创建文件失败: %w", err)
		}
		err = exporter.WriteCSV(f, table)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}
	}

	st.AppendAudit("cli", "export", map[string]interface{}{
		"sheetId": sheetID,
		"out":     opts.out,
	})

	fmt.Printf("已导出表 #%d → %s（%d 行）\n", sheetID, opts.out, len(table.Rows))
	return nil
}
