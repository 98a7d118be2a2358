package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"doctracker/internal/domain/document"
)

// fieldFlags - флаги полей документа для create и edit
type fieldFlags struct {
	name      string
	sender    string
	receiver  string
	docType   string
	status    string
	action    string
	notes     string
	date      string
	clearDate bool
}

func (ff *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.name, "name", "", "название документа")
	cmd.Flags().StringVar(&ff.sender, "sender", "", "отправитель")
	cmd.Flags().StringVar(&ff.receiver, "receiver", "", "получатель")
	cmd.Flags().StringVarP(&ff.docType, "type", "t", "", "тип документа")
	cmd.Flags().StringVar(&ff.status, "status", "", "статус документа")
	cmd.Flags().StringVar(&ff.action, "action", "", "действие")
	cmd.Flags().StringVar(&ff.notes, "notes", "", "примечания")
	cmd.Flags().StringVar(&ff.date, "date", "", "дата документа (YYYY-MM-DD)")
}

// apply переносит в f только явно заданные флаги
func (ff *fieldFlags) apply(cmd *cobra.Command, f *document.Fields) error {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("name", &f.DocumentName, ff.name)
	set("sender", &f.SenderName, ff.sender)
	set("receiver", &f.ReceiverName, ff.receiver)
	set("type", &f.DocumentType, ff.docType)
	set("status", &f.Status, ff.status)
	set("action", &f.Action, ff.action)
	set("notes", &f.Notes, ff.notes)

	if ff.clearDate {
		f.DocumentDate = nil
	}
	if cmd.Flags().Changed("date") {
		d, err := parseDateFlag(ff.date)
		if err != nil {
			return err
		}
		f.DocumentDate = d
	}
	return nil
}

func parseDateFlag(raw string) (*document.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := document.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("неверная дата %q, ожидается YYYY-MM-DD", raw)
	}
	return &d, nil
}

// promptMissing запрашивает незаполненные обязательные поля
func promptMissing(in io.Reader, out io.Writer, f *document.Fields, types []string) error {
	reader := bufio.NewReader(in)
	ask := func(label string, dst *string) error {
		if strings.TrimSpace(*dst) != "" {
			return nil
		}
		fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("ошибка чтения ввода: %w", err)
		}
		*dst = strings.TrimSpace(line)
		return nil
	}

	if err := ask("Название", &f.DocumentName); err != nil {
		return err
	}
	if err := ask("Отправитель", &f.SenderName); err != nil {
		return err
	}
	if err := ask("Получатель", &f.ReceiverName); err != nil {
		return err
	}
	label := "Тип документа"
	if len(types) > 0 {
		label = fmt.Sprintf("Тип документа (%s)", strings.Join(types, ", "))
	}
	return ask(label, &f.DocumentType)
}
