// internal/ticket/weekly.go
package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ticket-service/internal/escpos"
	"ticket-service/internal/model"
)

const (
	weeklyBanner  = " WOCHE "
	undatedBanner = "OHNE DATUM"
)

var germanWeekdays = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// DayBucket holds the tasks due on one UTC calendar day
type DayBucket struct {
	Key   string // YYYY-MM-DD
	Date  time.Time
	Tasks []model.Task
}

// Label formats the bucket banner without zero padding, e.g. "Mo 6.10"
func (b DayBucket) Label() string {
	return fmt.Sprintf("%s %d.%d", germanWeekdays[b.Date.Weekday()], b.Date.Day(), int(b.Date.Month()))
}

// GroupByDay buckets tasks by due date in ascending day order. Tasks
// without a usable due date are returned separately in input order.
func GroupByDay(tasks []model.Task) ([]DayBucket, []model.Task) {
	index := make(map[string]int)
	var days []DayBucket
	var undated []model.Task

	for _, task := range tasks {
		key, ok := task.DueDate()
		if !ok {
			undated = append(undated, task)
			continue
		}
		i, seen := index[key]
		if !seen {
			date, _ := time.Parse("2006-01-02", key)
			days = append(days, DayBucket{Key: key, Date: date})
			i = len(days) - 1
			index[key] = i
		}
		days[i].Tasks = append(days[i].Tasks, task)
	}

	sort.SliceStable(days, func(a, b int) bool {
		return days[a].Key < days[b].Key
	})
	return days, undated
}

// buildWeekly prints tasks grouped under one banner per due day
func buildWeekly(tasks []model.Task, params TaskParams) []byte {
	c := newCommands()

	c.add(escpos.Align(escpos.AlignCenter), escpos.Inverse(true), escpos.Emphasis(true), escpos.TextSize(2, 2))
	c.line(weeklyBanner)
	c.add(escpos.Inverse(false), escpos.TextSize(1, 1))
	if weekRange := strings.TrimSpace(params.WeekRange); weekRange != "" {
		c.line(escpos.NormalizePunctuation(weekRange))
	}
	c.add(escpos.Emphasis(false), escpos.Align(escpos.AlignLeft))
	c.rule()

	days, undated := GroupByDay(tasks)
	total := 0

	for _, day := range days {
		c.dayGroup(day.Label(), day.Tasks)
		total += len(day.Tasks)
	}
	if len(undated) > 0 {
		c.dayGroup(undatedBanner, undated)
		total += len(undated)
	}

	c.rule()
	c.add(escpos.Emphasis(true))
	c.line("Gesamt: " + taskCount(total))
	c.add(escpos.Emphasis(false))
	c.trailer()
	return c.bytes()
}

// dayGroup appends an inverted day banner with its count and the day's tasks
func (c *commands) dayGroup(label string, tasks []model.Task) {
	c.add(escpos.ESC_POS_COMMANDS.LINE_FEED)
	c.add(escpos.Inverse(true), escpos.Emphasis(true))
	c.text(" " + label + " ")
	c.add(escpos.Inverse(false), escpos.Emphasis(false))
	c.line(fmt.Sprintf(" (%d)", len(tasks)))

	for _, task := range tasks {
		c.taskEntry(task)
	}
}
