// internal/model/task.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultPrinterPort is the raw-socket port thermal printers listen on
const DefaultPrinterPort = 9100

// TaskID is a task identifier that may arrive as a JSON string or number
type TaskID struct {
	Value   string
	Numeric bool
}

// StringID creates a string task id
func StringID(s string) TaskID {
	return TaskID{Value: s}
}

// NumericID creates a numeric task id
func NumericID(n int64) TaskID {
	return TaskID{Value: fmt.Sprintf("%d", n), Numeric: true}
}

// IsZero reports whether the id is falsy: an empty string or the number 0.
func (id TaskID) IsZero() bool {
	if id.Value == "" {
		return true
	}
	if id.Numeric {
		if f, err := json.Number(id.Value).Float64(); err == nil && f == 0 {
			return true
		}
	}
	return false
}

func (id TaskID) String() string {
	return id.Value
}

// UnmarshalJSON accepts a string, a number or null
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = TaskID{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}
		*id = TaskID{Value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	*id = TaskID{Value: n.String(), Numeric: true}
	return nil
}

// MarshalJSON writes the id back in its original JSON kind
func (id TaskID) MarshalJSON() ([]byte, error) {
	if id.Numeric && id.Value != "" {
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

// Task is one printable to-do item supplied by the task sources
type Task struct {
	ID                   TaskID   `json:"id" swaggertype:"string"`
	Title                string   `json:"title"`
	Description          string   `json:"description,omitempty"`
	Due                  string   `json:"due,omitempty"`
	Labels               []string `json:"labels,omitempty"`
	Priority             *float64 `json:"priority,omitempty"`
	CompletedThisMorning bool     `json:"completedThisMorning,omitempty"`
}

// DueDate returns the UTC calendar day of the due timestamp as YYYY-MM-DD.
// An absent or unparsable due value reports false.
func (t Task) DueDate() (string, bool) {
	due := strings.TrimSpace(t.Due)
	if due == "" {
		return "", false
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, due)
		if err == nil {
			return parsed.UTC().Format("2006-01-02"), true
		}
	}
	return "", false
}

// PrintRequest describes one task ticket print call
type PrintRequest struct {
	Host        string `json:"host"`
	Port        int    `json:"port,omitempty"`
	Tasks       []Task `json:"tasks"`
	Mode        string `json:"mode,omitempty"`
	WeekRange   string `json:"weekRange,omitempty"`
	HeaderTitle string `json:"headerTitle,omitempty"`
}

// WifiSecurity is the authentication type encoded in a WiFi QR code
type WifiSecurity string

const (
	WifiWPA    WifiSecurity = "WPA"
	WifiWEP    WifiSecurity = "WEP"
	WifiNoPass WifiSecurity = "nopass"
)

// WifiRequest describes one WiFi credential ticket print call
type WifiRequest struct {
	Host     string       `json:"host"`
	Port     int          `json:"port,omitempty"`
	SSID     string       `json:"ssid"`
	Password string       `json:"password,omitempty"`
	Type     WifiSecurity `json:"type,omitempty"`
	Hidden   bool         `json:"hidden,omitempty"`
}

// PrinterStatus is the outcome of a reachability probe
type PrinterStatus struct {
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Reachable bool      `json:"reachable"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
