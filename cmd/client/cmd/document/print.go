package document

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"doctracker/internal/app/client"
	"doctracker/internal/domain/document"
	"doctracker/internal/domain/view"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderPage выводит страницу документов таблицей
func RenderPage(w io.Writer, v view.View, f document.Formatter, snap document.Snapshot) {
	if snap.Stale() {
		fmt.Fprintln(w, color.YellowString("Сервис недоступен, показан локальный снимок от %s",
			f.FormatTimestamp(snap.FetchedAt())))
	}

	if v.Total == 0 {
		fmt.Fprintln(w, "Документы не найдены")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tНазвание\tОтправитель\tПолучатель\tТип\tСтатус\tДата документа\tСоздан\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t---\t---\t---\t\n")

	for _, r := range v.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ID,
			truncate(f.FormatText(r.DocumentName), 40),
			truncate(f.FormatText(r.SenderName), 24),
			truncate(f.FormatText(r.ReceiverName), 24),
			f.FormatText(r.DocumentType),
			client.ColorStatus(f.FormatText(r.Status)),
			f.FormatDate(r.DocumentDate),
			f.FormatTimestamp(r.CreatedAt),
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nСтраница %d из %d, документов: %d (по %d на странице)\n",
		v.PageIndex+1, v.PageCount, v.Total, v.PageSize)
}

func printDocument(w io.Writer, r document.Record, f document.Formatter) {
	fmt.Fprintf(w, "ID:             %s\n", r.ID)
	fmt.Fprintf(w, "Название:       %s\n", f.FormatText(r.DocumentName))
	fmt.Fprintf(w, "Отправитель:    %s\n", f.FormatText(r.SenderName))
	fmt.Fprintf(w, "Получатель:     %s\n", f.FormatText(r.ReceiverName))
	fmt.Fprintf(w, "Тип:            %s\n", f.FormatText(r.DocumentType))
	fmt.Fprintf(w, "Статус:         %s\n", client.ColorStatus(f.FormatText(r.Status)))
	fmt.Fprintf(w, "Действие:       %s\n", f.FormatText(r.Action))
	fmt.Fprintf(w, "Примечания:     %s\n", f.FormatText(r.Notes))
	fmt.Fprintf(w, "Дата документа: %s\n", f.FormatDate(r.DocumentDate))
	fmt.Fprintf(w, "Создан:         %s\n", f.FormatTimestamp(r.CreatedAt))
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}
