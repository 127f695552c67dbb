// internal/ticket/daily.go
package ticket

import (
	"strings"

	"ticket-service/internal/escpos"
	"ticket-service/internal/model"
)

const dailyDefaultHeader = "HEUTE"

// buildDaily prints all tasks as one dense bulleted list
func buildDaily(tasks []model.Task, params TaskParams) []byte {
	c := newCommands()

	header := strings.TrimSpace(params.HeaderTitle)
	if header == "" {
		header = dailyDefaultHeader
	}

	c.add(escpos.Align(escpos.AlignCenter), escpos.Inverse(true), escpos.Emphasis(true), escpos.TextSize(1, 2))
	c.line(" " + escpos.CleanTitle(header) + " " + params.Now.Format("02.01") + " ")
	c.add(escpos.Inverse(false), escpos.Emphasis(false), escpos.TextSize(1, 1))

	c.add(escpos.Align(escpos.AlignLeft))
	c.line(taskCount(len(tasks)))
	c.rule()

	for _, task := range tasks {
		c.taskEntry(task)
	}

	c.rule()
	c.trailer()
	return c.bytes()
}
