// cmd/client/cmd/document/get.go
package document

import (
	"os"

	"github.com/spf13/cobra"
)

var getFormat string

var GetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Просмотреть документ",
	Long:  `Загружает документ с сервиса по номеру и выводит все его поля.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		rec, err := app.GetDocument(cmd.Context(), args[0])
		if err != nil {
			return describe("ошибка получения документа", err)
		}

		if wantJSON(cmd, getFormat) {
			return printJSON(rec)
		}
		printDocument(os.Stdout, *rec, app.Formatter())
		return nil
	},
}

func init() {
	GetCmd.Flags().StringVarP(&getFormat, "format", "f", "human", "формат вывода (human, json)")
}
