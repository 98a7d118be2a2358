// cmd/client/cmd/document/delete.go
package document

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить документ",
	Long: `Удаление документа с сервиса. Без флага --yes удаление нужно
подтвердить в терминале.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		id := args[0]

		if !deleteYes {
			if !isTerminal(os.Stdin) {
				return fmt.Errorf("подтвердите удаление флагом --yes")
			}
			fmt.Printf("Удалить документ %s? [y/N]: ", id)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes", "д", "да":
			default:
				fmt.Println("Удаление отменено")
				return nil
			}
		}

		if err := app.DeleteDocument(cmd.Context(), id); err != nil {
			return describe("ошибка удаления документа", err)
		}
		fmt.Printf("Документ %s удален\n", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не запрашивать подтверждение")
}
