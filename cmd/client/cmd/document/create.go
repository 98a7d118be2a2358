// cmd/client/cmd/document/create.go
package document

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doctracker/internal/domain/document"
)

var createFlags fieldFlags

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать документ",
	Long: `Создание нового документа.

Обязательные поля: название, отправитель, получатель и тип документа.
Незаполненные обязательные поля запрашиваются интерактивно, если ввод
идет с терминала. Без статуса документ получает статус ожидания.`,
	Example: `  doctracker document create --name "Смета" --sender "Бухгалтерия" --receiver "Дирекция" --type memo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		var f document.Fields
		if err := createFlags.apply(cmd, &f); err != nil {
			return err
		}

		if isTerminal(os.Stdin) {
			enums, err := app.Enums(cmd.Context())
			if err != nil {
				app.Logger().Debug("Справочники недоступны", "error", err)
			}
			if err := promptMissing(os.Stdin, os.Stdout, &f, enums.DocumentTypes); err != nil {
				return err
			}
		}

		id, err := app.CreateDocument(cmd.Context(), f)
		if err != nil {
			return describe("ошибка создания документа", err)
		}

		if wantJSON(cmd, "") {
			return printJSON(map[string]string{"id": id})
		}
		fmt.Printf("Документ создан: %s\n", id)
		return nil
	},
}

func init() {
	createFlags.register(CreateCmd)
}
