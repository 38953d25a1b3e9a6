// Package log writes one JSON object per line through the standard logger.
// Request helpers take the Fiber context when there is one; pass nil from
// background code. Event records menu activity (published drafts,
// checkouts) in the same stream under an "event.<type>" action.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals keys read off the request. The session middleware sets them.
const (
	LocalRequestID = "requestid"
	LocalUserID    = "user_id"
	LocalStartedAt = "started_at"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Key       string         `json:"key,omitempty"`
	At        string         `json:"at,omitempty"`
	Payload   any            `json:"payload,omitempty"`
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals(LocalRequestID).(string); ok && rid != "" {
			e.ReqID = rid
		}
		if uid, ok := c.Locals(LocalUserID).(string); ok && uid != "" {
			e.UserID = uid
		}
		if start, ok := c.Locals(LocalStartedAt).(time.Time); ok {
			e.LatencyMs = time.Since(start).Milliseconds()
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	emit(e)
}

func emit(e entry) {
	b, err := json.Marshal(e)
	if err != nil {
		// Payloads are caller supplied; keep the line even if one won't encode.
		e.Payload, e.Fields, e.Err = nil, nil, err.Error()
		b, _ = json.Marshal(e)
	}
	log.Println(string(b))
}

// Event records a domain event keyed by the thing it concerns, e.g. a
// receipt id for a checkout. A zero at is logged without a timestamp.
func Event(eventType, key string, at time.Time, payload any) {
	e := entry{
		TS:      time.Now().UTC().Format(time.RFC3339),
		Level:   "audit",
		Action:  "event." + eventType,
		Key:     key,
		Payload: payload,
	}
	if !at.IsZero() {
		e.At = at.UTC().Format(time.RFC3339)
	}
	emit(e)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
