// cmd/client/cmd/document/list.go
package document

import (
	"os"

	"github.com/spf13/cobra"

	"doctracker/internal/app/client"
	"doctracker/internal/domain/document"
)

var (
	listSearch   string
	listBucket   string
	listStatus   string
	listPage     int
	listPageSize int
	listFormat   string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список документов",
	Long: `Просмотр страницы документов с поиском и фильтрами.

Поиск без учета регистра идет по номеру, названию, отправителю,
получателю, примечаниям и действию. Окно по дате создания: all, today,
week, month. Статус all отключает фильтр по статусу.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		v, err := app.List(cmd.Context(), client.ListRequest{
			Criteria: document.Criteria{
				SearchText: listSearch,
				Bucket:     document.ParseBucket(listBucket),
				Status:     listStatus,
			},
			Page:     listPage - 1,
			PageSize: listPageSize,
		})
		if err != nil {
			return describe("ошибка получения списка документов", err)
		}

		if wantJSON(cmd, listFormat) {
			return printJSON(v)
		}
		RenderPage(os.Stdout, v, app.Formatter(), app.Store().Snapshot())
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "поисковая строка")
	ListCmd.Flags().StringVarP(&listBucket, "bucket", "b", string(document.BucketAll), "окно по дате создания (all, today, week, month)")
	ListCmd.Flags().StringVar(&listStatus, "status", document.StatusAll, "фильтр по статусу")
	ListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "номер страницы")
	ListCmd.Flags().IntVarP(&listPageSize, "page-size", "n", 0, "размер страницы (по умолчанию из конфигурации)")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")
}
