// cmd/client/cmd/document/meta.go
package document

import (
	"fmt"

	"github.com/spf13/cobra"

	"doctracker/internal/app/client"
	"doctracker/internal/domain/document"
)

var StatusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Допустимые статусы документов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEnum(cmd, func(e document.Enums) []string { return e.Statuses }, true)
	},
}

var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Допустимые типы документов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEnum(cmd, func(e document.Enums) []string { return e.DocumentTypes }, false)
	},
}

func printEnum(cmd *cobra.Command, pick func(document.Enums) []string, colored bool) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}

	enums, err := app.Enums(cmd.Context())
	if err != nil {
		return describe("ошибка загрузки справочника", err)
	}
	values := pick(enums)

	if wantJSON(cmd, "") {
		return printJSON(values)
	}
	for _, v := range values {
		if colored {
			v = client.ColorStatus(v)
		}
		fmt.Println(v)
	}
	return nil
}
