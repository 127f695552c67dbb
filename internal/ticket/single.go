// internal/ticket/single.go
package ticket

import (
	"strings"
	"unicode/utf8"

	"ticket-service/internal/escpos"
	"ticket-service/internal/layout"
	"ticket-service/internal/model"
)

const (
	// QRPrefix marks task QR codes for the companion scanner app
	QRPrefix = "donotick:"

	singleBanner       = " AUFGABE "
	singleQRModuleSize = 8
	largeTitleMaxChars = 20
	largeTitleSize     = 3
	smallTitleSize     = 2
)

// TitleSize picks the title scale: short titles print larger
func TitleSize(cleanedTitle string) int {
	if utf8.RuneCountInString(cleanedTitle) <= largeTitleMaxChars {
		return largeTitleSize
	}
	return smallTitleSize
}

// QRPayload returns the scanner payload for a task, falling back to the
// title when the id is falsy. The fallback uses the cleaned title so
// pictographs never reach the QR data as stray low bytes.
func QRPayload(task model.Task) string {
	if !task.ID.IsZero() {
		return QRPrefix + task.ID.String()
	}
	return QRPrefix + escpos.CleanTitle(task.Title)
}

// buildSingle prints one complete ticket per task, concatenated
func buildSingle(tasks []model.Task) []byte {
	var out []byte
	for _, task := range tasks {
		out = append(out, singleTicket(task)...)
	}
	return out
}

func singleTicket(task model.Task) []byte {
	c := newCommands()
	title := escpos.CleanTitle(task.Title)
	size := TitleSize(title)

	// Banner
	c.add(escpos.Align(escpos.AlignCenter), escpos.Inverse(true), escpos.TextSize(2, 2), escpos.Emphasis(true))
	c.line(singleBanner)
	c.add(escpos.Inverse(false), escpos.ESC_POS_COMMANDS.LINE_FEED)

	// Title
	c.add(escpos.TextSize(size, size))
	for _, l := range wrapOrBlank(title, escpos.PaperColumns/size) {
		c.line(l)
	}
	c.add(escpos.Emphasis(false), escpos.TextSize(1, 1))

	if chips := labelChips(task.Labels); chips != "" {
		c.add(escpos.ESC_POS_COMMANDS.LINE_FEED)
		c.line(chips)
	}

	if desc := strings.TrimSpace(escpos.NormalizePunctuation(task.Description)); desc != "" {
		c.rule()
		for _, l := range layout.Wrap(desc, escpos.PaperColumns) {
			c.line(l)
		}
	}

	c.rule()
	c.add(escpos.ESC_POS_COMMANDS.LINE_FEED)
	c.add(escpos.QRCode(QRPayload(task), singleQRModuleSize))
	c.add(escpos.Align(escpos.AlignLeft))
	c.trailer()

	return c.bytes()
}
