package tools

import (
	"bytes"
	"encoding/json"
	"time"
)

// IndentJSON re-indents an upstream JSON payload for the "json" output
// format. The payload is returned untouched when it is not valid JSON.
func IndentJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}

// FormatTime renders an ISO-8601 timestamp as "2006-01-02 15:04". Empty
// input renders as "Not set"; anything unparseable passes through as-is.
func FormatTime(iso string) string {
	if iso == "" {
		return "Not set"
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05Z0700"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return iso
}
