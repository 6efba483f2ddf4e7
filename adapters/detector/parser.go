package detector

import (
	"strings"

	"structdetect/domain/structured"
)

// parseState is the quote state of the row scanner
type parseState int

const (
	stateNormal parseState = iota
	stateInQuotes
)

// ParseRow splits a line into trimmed field values
func ParseRow(line string, delimiter structured.Delimiter) []string {
	if delimiter.IsFixedWidth() {
		return parseFixedWidth(line)
	}
	return parseDelimited(line, string(delimiter))
}

// parseFixedWidth splits on whitespace runs and drops empty fragments
func parseFixedWidth(line string) []string {
	parts := whitespaceRun.Split(line, -1)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

// parseDelimited scans the line once with a two-state machine.
// Every double quote toggles the state and is dropped, so the "" escape
// is not recognised: "a""b" reads as ab.
func parseDelimited(line, delimiter string) []string {
	var (
		values  []string
		current strings.Builder
		state   = stateNormal
	)

	for i := 0; i < len(line); {
		switch {
		case line[i] == '"':
			if state == stateNormal {
				state = stateInQuotes
			} else {
				state = stateNormal
			}
			i++
		case state == stateNormal && strings.HasPrefix(line[i:], delimiter):
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
			i += len(delimiter)
		default:
			current.WriteByte(line[i])
			i++
		}
	}

	return append(values, strings.TrimSpace(current.String()))
}
