package ass

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cue represents a single dialogue event.
type cue struct {
	start time.Duration
	end   time.Duration
	text  string
}

var defaultFormat = []string{"layer", "start", "end", "style", "name", "marginl", "marginr", "marginv", "effect", "text"}

type eventFormat struct {
	fields []string
	start  int
	end    int
	text   int
}

func newEventFormat(fields []string) (*eventFormat, error) {
	ret := &eventFormat{fields: fields, start: -1, end: -1, text: -1}
	for i, field := range fields {
		switch field {
		case "start":
			ret.start = i
		case "end":
			ret.end = i
		case "text":
			ret.text = i
		}
	}
	if ret.start == -1 || ret.end == -1 || ret.text == -1 {
		return nil, fmt.Errorf("invalid events format: %v", strings.Join(fields, ","))
	}
	if ret.text != len(fields)-1 {
		return nil, fmt.Errorf("invalid events format: text must be the last field")
	}
	return ret, nil
}

// parseEvents extracts dialogue cues from the [Events] section of an ASS/SSA document.
func parseEvents(document string) ([]*cue, error) {
	var (
		section  string
		format   *eventFormat
		hasEvent bool
		cues     []*cue
	)
	for lineNo, line := range strings.Split(document, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(trimmed)
			if section == "[events]" {
				hasEvent = true
			}
			continue
		}
		if section != "[events]" {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "format":
			fields := strings.Split(value, ",")
			for i := range fields {
				fields[i] = strings.ToLower(strings.TrimSpace(fields[i]))
			}
			var err error
			if format, err = newEventFormat(fields); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
		case "dialogue":
			if format == nil {
				format, _ = newEventFormat(defaultFormat)
			}
			parts := strings.SplitN(strings.TrimLeft(value, " "), ",", len(format.fields))
			if len(parts) != len(format.fields) {
				return nil, fmt.Errorf("line %d: expected %d fields but had %d", lineNo+1, len(format.fields), len(parts))
			}
			start, err := parseTimestamp(parts[format.start])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			end, err := parseTimestamp(parts[format.end])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			cues = append(cues, &cue{start: start, end: end, text: parts[format.text]})
		}
	}
	if !hasEvent {
		return nil, fmt.Errorf("missing [Events] section")
	}
	return cues, nil
}

// parseTimestamp parses H:MM:SS.cc timestamps.
func parseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "+-") {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}
	secText, fracText, _ := strings.Cut(parts[2], ".")
	seconds, err := strconv.Atoi(secText)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}
	ret := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if fracText != "" {
		frac, err := strconv.Atoi(fracText)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp: %q", value)
		}
		scale := time.Second
		for range fracText {
			scale /= 10
		}
		ret += time.Duration(frac) * scale
	}
	return ret, nil
}

// plainText strips override blocks and expands ASS escapes.
func plainText(text string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{':
			depth++
			continue
		case c == '}' && depth > 0:
			depth--
			continue
		case depth > 0:
			continue
		case c == '\\' && i+1 < len(text):
			switch text[i+1] {
			case 'N', 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'h':
				b.WriteByte(' ')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
