// cmd/client/cmd/document/edit.go
package document

import (
	"fmt"

	"github.com/spf13/cobra"

	"doctracker/internal/app/client"
)

var editFlags fieldFlags

var EditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Изменить документ",
	Long: `Изменение полей документа. Меняются только переданные флаги.

Если значения совпадают с сохраненными, запрос на сервис не отправляется.`,
	Example: `  doctracker document edit DOC-001 --status "อนุมัติ" --notes "подписано"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		tr, err := app.OpenDraft(cmd.Context(), args[0])
		if err != nil {
			return describe("ошибка загрузки документа", err)
		}
		if err := editFlags.apply(cmd, tr.Draft()); err != nil {
			return err
		}

		outcome, err := app.SaveDraft(cmd.Context(), tr)
		if err != nil {
			return describe("ошибка сохранения документа", err)
		}

		if outcome == client.SaveNoChanges {
			fmt.Println("Изменений нет, документ не изменен")
			return nil
		}
		fmt.Printf("Документ %s сохранен\n", tr.ID())
		return nil
	},
}

func init() {
	editFlags.register(EditCmd)
	EditCmd.Flags().BoolVar(&editFlags.clearDate, "clear-date", false, "удалить дату документа")
}
