package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the output encoding of a stream tracer.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output file extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
	FormatChrome               // chrome://tracing event array
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	case "chrome":
		return FormatChrome, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|chrome)", s)
}

// DetectFormat picks a format from an output path.
func DetectFormat(path string) Format {
	switch {
	case strings.HasSuffix(path, ".ndjson"):
		return FormatNDJSON
	case strings.HasSuffix(path, ".json"):
		return FormatChrome
	default:
		return FormatText
	}
}

// FormatEvent encodes a single event. Chrome events are not comma
// separated here; StreamTracer takes care of the surrounding array.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	case FormatChrome:
		return formatChrome(ev)
	default:
		return formatText(ev)
	}
}

func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		Time     string            `json:"time"`
		Seq      uint64            `json:"seq"`
		RunID    string            `json:"run_id,omitempty"`
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id,omitempty"`
		GID      uint64            `json:"gid,omitempty"`
		Name     string            `json:"name"`
		Detail   string            `json:"detail,omitempty"`
		Extra    map[string]string `json:"extra,omitempty"`
	}

	data, _ := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		RunID:    ev.RunID,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	return append(data, '\n')
}

func formatChrome(ev *Event) []byte {
	type chromeEvent struct {
		Name  string            `json:"name"`
		Cat   string            `json:"cat"`
		Ph    string            `json:"ph"`
		Ts    int64             `json:"ts"`
		Pid   int               `json:"pid"`
		Tid   uint64            `json:"tid"`
		Scope string            `json:"s,omitempty"`
		Args  map[string]string `json:"args,omitempty"`
	}

	ce := chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		Ts:   ev.Time.UnixMicro(),
		Pid:  1,
		Tid:  ev.GID,
		Args: ev.Extra,
	}
	switch ev.Kind {
	case KindSpanBegin:
		ce.Ph = "B"
	case KindSpanEnd:
		ce.Ph = "E"
	default:
		ce.Ph = "i"
		ce.Scope = "t"
	}
	if ev.Detail != "" {
		ce.Args = maps.Clone(ev.Extra)
		if ce.Args == nil {
			ce.Args = make(map[string]string, 1)
		}
		ce.Args["detail"] = ev.Detail
	}
	data, _ := json.Marshal(ce)
	return data
}

// formatText renders "15:04:05.000000 → name (detail) {k=v}" with one
// indent step for child spans.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000000"))
	sb.WriteByte(' ')
	if ev.ParentID > 0 {
		sb.WriteString("  ")
	}

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	case KindPoint:
		sb.WriteString("• ")
	case KindHeartbeat:
		sb.WriteString("♡ ")
	}
	sb.WriteString(ev.Name)

	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		sb.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
