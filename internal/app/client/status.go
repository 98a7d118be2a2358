package client

import (
	"github.com/fatih/color"

	"doctracker/internal/domain/document"
)

const (
	StatusApproved  = "อนุมัติ"
	StatusNeedsEdit = "แก้ไข"
)

var statusColors = map[string]*color.Color{
	StatusApproved:                color.New(color.FgGreen),
	document.DefaultPendingStatus: color.New(color.FgYellow),
	StatusNeedsEdit:               color.New(color.FgRed),
}

// ColorStatus раскрашивает статус для вывода в терминал.
// Неизвестные статусы выводятся без цвета.
func ColorStatus(status string) string {
	c, ok := statusColors[status]
	if !ok {
		return status
	}
	return c.Sprint(status)
}
