// internal/ticket/builder.go
package ticket

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"ticket-service/internal/escpos"
	"ticket-service/internal/layout"
	"ticket-service/internal/model"
)

// Mode selects which ticket layout a print call uses
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
	ModeWifi   Mode = "wifi"
)

// trailerFeedLines is how far the paper advances before the cut
const trailerFeedLines = 4

// bulletIndent is the column margin used by list layouts for "- " and continuations
const bulletIndent = 2

// TaskParams carries the per-call options of the task layouts
type TaskParams struct {
	// Now is the reference time for the daily header; zero means time.Now().
	Now         time.Time
	WeekRange   string
	HeaderTitle string
}

// ParseMode parses a mode name case-insensitively
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSingle:
		return ModeSingle, nil
	case ModeDaily:
		return ModeDaily, nil
	case ModeWeekly:
		return ModeWeekly, nil
	case ModeWifi:
		return ModeWifi, nil
	default:
		return "", model.NewValidationError("mode", fmt.Sprintf("unsupported mode %q", s))
	}
}

// ResolveMode returns the requested mode, or infers one from the task
// count when none was given: one task prints single, more print daily.
func ResolveMode(requested string, taskCount int) (Mode, error) {
	if strings.TrimSpace(requested) == "" {
		if taskCount > 1 {
			return ModeDaily, nil
		}
		return ModeSingle, nil
	}
	return ParseMode(requested)
}

// BuildTasks renders tasks into one ESC/POS payload using the given layout
func BuildTasks(mode Mode, tasks []model.Task, params TaskParams) ([]byte, error) {
	if len(tasks) == 0 {
		return nil, model.NewValidationError("tasks", "must not be empty")
	}
	if params.Now.IsZero() {
		params.Now = time.Now()
	}

	switch mode {
	case ModeSingle:
		return buildSingle(tasks), nil
	case ModeDaily:
		return buildDaily(tasks, params), nil
	case ModeWeekly:
		return buildWeekly(tasks, params), nil
	default:
		return nil, model.NewValidationError("mode", fmt.Sprintf("%q is not a task layout", mode))
	}
}

// commands accumulates the command sequence of one ticket
type commands [][]byte

func newCommands() *commands {
	c := &commands{}
	c.add(escpos.Init())
	return c
}

func (c *commands) add(cmds ...[]byte) {
	*c = append(*c, cmds...)
}

// text appends code page translated text without a line break
func (c *commands) text(s string) {
	c.add(escpos.Translate(s))
}

// line appends code page translated text and a line feed
func (c *commands) line(s string) {
	c.add(escpos.Translate(s), escpos.ESC_POS_COMMANDS.LINE_FEED)
}

// rule appends a full-width dashed separator
func (c *commands) rule() {
	c.add(escpos.HR('-', escpos.PaperColumns))
}

// trailer feeds past the cutter and cuts
func (c *commands) trailer() {
	c.add(escpos.Feed(trailerFeedLines), escpos.Cut())
}

func (c *commands) bytes() []byte {
	return bytes.Join(*c, nil)
}

// labelChips renders cleaned labels as "[a] [b]", skipping labels that clean to nothing
func labelChips(labels []string) string {
	chips := make([]string, 0, len(labels))
	for _, label := range labels {
		if cleaned := escpos.CleanTitle(label); cleaned != "" {
			chips = append(chips, "["+cleaned+"]")
		}
	}
	return strings.Join(chips, " ")
}

// wrapOrBlank wraps text and keeps at least one (possibly empty) line so a
// task whose title cleans to nothing still takes its place on the ticket.
func wrapOrBlank(text string, width int) []string {
	lines := layout.Wrap(text, width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// taskEntry appends the bulleted list form of a task shared by daily and weekly
func (c *commands) taskEntry(task model.Task) {
	lines := wrapOrBlank(escpos.CleanTitle(task.Title), escpos.PaperColumns-bulletIndent)
	indent := strings.Repeat(" ", bulletIndent)

	c.add(escpos.Emphasis(true))
	c.line("- " + lines[0])
	c.add(escpos.Emphasis(false))
	for _, l := range lines[1:] {
		c.line(indent + l)
	}

	if chips := labelChips(task.Labels); chips != "" {
		c.line(indent + chips)
	}
}

// taskCount formats a German task count
func taskCount(n int) string {
	if n == 1 {
		return "1 Aufgabe"
	}
	return fmt.Sprintf("%d Aufgaben", n)
}
