package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sitegrid/internal/store"
)

func newSheetsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "列出数据库中的排期表",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheets(dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "data/sitegrid.db", "数据库文件路径")

	return cmd
}

func runSheets(dbPath string) error {
	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}
	defer st.Close()

	sheets, err := st.ListSheets()
	if err != nil {
		return fmt.Errorf("查询排期表失败: %w", err)
	}
	if len(sheets) == 0 {
		fmt.Println("（没有排期表）")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t名称\t行数\t格数\t最大天数\t创建时间")
	for _, s := range sheets {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n",
			s.ID, s.Name, s.RowCount, s.CellCount, s.MaxDay,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
