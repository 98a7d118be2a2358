// cmd/client/cmd/browse.go
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"doctracker/cmd/client/cmd/document"
	"doctracker/internal/app/client"
)

const browseHelp = `Команды:
  search <текст>   поиск (пустой текст сбрасывает поиск)
  bucket <окно>    all, today, week, month
  status <статус>  фильтр по статусу, all - без фильтра
  clear            сбросить все фильтры
  next, prev       следующая и предыдущая страница
  page <N>         перейти на страницу N
  size <N>         размер страницы
  refresh          перечитать документы с сервиса
  help             эта подсказка
  quit             выход`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Интерактивный просмотр документов",
	Long: `Интерактивный просмотр списка документов с поиском, фильтрами
и переходом по страницам.

` + browseHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := app.Load(ctx); err != nil {
			log.Warn("Не удалось загрузить документы", "error", err)
			fmt.Fprintln(os.Stderr, "Документы не загружены, используйте refresh")
		}

		session := app.Browse()
		defer session.Close()

		render := func() {
			document.RenderPage(os.Stdout, session.View(), app.Formatter(), app.Store().Snapshot())
		}
		render()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "":
				continue
			case "quit", "exit", "q":
				return nil
			case "help", "?":
				fmt.Println(browseHelp)
				continue
			}

			if _, err := session.Execute(ctx, line); err != nil {
				if errors.Is(err, client.ErrUnknownCommand) {
					fmt.Println("Неизвестная команда, help - список команд")
					continue
				}
				fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
			}
			render()

			if ctx.Err() != nil {
				return nil
			}
		}
	},
}
