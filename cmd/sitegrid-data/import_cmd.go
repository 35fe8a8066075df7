package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitegrid/internal/importer"
	"sitegrid/internal/parser"
	"sitegrid/internal/store"
)

type importOptions struct {
	file      string
	sheetName string
	dbPath    string
	strict    bool
	canonical bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "导入宽表 CSV / XLSX 到数据库",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "输入文件 (.csv / .xlsx)")
	cmd.Flags().StringVar(&opts.sheetName, "sheet", "", "排期表名称（缺省用文件名）")
	cmd.Flags().StringVar(&opts.dbPath, "db", "data/sitegrid.db", "数据库文件路径")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "严格模式：无区域的数据行报错")
	cmd.Flags().BoolVar(&opts.canonical, "canonical-sections", false, "启用区域白名单收敛")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(opts importOptions) error {
	st, err := store.New(opts.dbPath)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}
	defer st.Close()

	var policy parser.SectionPolicy
	if opts.canonical {
		policy = parser.DefaultSectionPolicy()
	}

	im := importer.NewImporter(st, importer.Options{
		Policy: policy,
		Strict: opts.strict,
	})

	report, err := im.ImportFile(opts.file, opts.sheetName)
	if err != nil {
		return fmt.Errorf("导入失败: %w", err)
	}

	st.AppendAudit("cli", "import", map[string]interface{}{
		"file":  opts.file,
		"sheet": report.SheetName,
	})

	fmt.Printf("已导入 %q → 表 #%d：%d 行，%d 格", report.SheetName, report.SheetID, report.Rows, report.Cells)
	if report.OrphansSkipped > 0 {
		fmt.Printf("，跳过孤行 %d", report.OrphansSkipped)
	}
	if report.HeadersDropped > 0 {
		fmt.Printf("，丢弃标题 %d", report.HeadersDropped)
	}
	fmt.Println()
	return nil
}
