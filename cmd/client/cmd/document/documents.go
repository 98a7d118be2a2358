package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"doctracker/internal/app/client"
	"doctracker/internal/domain/document"
)

// DocumentCmd - родительская команда для всех операций с документами
var DocumentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc", "documents"},
	Short:   "Управление документами",
	Long:    `Просмотр, создание, редактирование, удаление и выгрузка документов.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func wantJSON(cmd *cobra.Command, format string) bool {
	if format == "json" {
		return true
	}
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// describe дополняет ошибку операции понятным пользователю текстом
func describe(action string, err error) error {
	switch {
	case errors.Is(err, document.ErrValidation):
		if fields := document.InvalidFields(err); len(fields) > 0 {
			return fmt.Errorf("%s: некорректные поля: %s", action, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%s: %w", action, err)
	case errors.Is(err, document.ErrUnauthenticated):
		return fmt.Errorf("%s: требуется вход в систему", action)
	case errors.Is(err, document.ErrNotFound):
		return fmt.Errorf("%s: документ не найден", action)
	case errors.Is(err, document.ErrNetwork):
		return fmt.Errorf("%s: сервис документов недоступен, повторите позже: %w", action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
