// Package directive parses single-line CALL_FUNCTION directives into a
// function name and flat keyword arguments.
//
// The grammar is deliberately naive and pinned by tests: arguments are
// split on every comma, so commas inside quoted values break the value
// apart; nested parentheses are not tracked; only one surrounding quote
// layer is stripped; a missing closing parenthesis is tolerated, with the
// rest of the line taken as the argument string.
package directive

import (
	"errors"
	"strings"
)

// Marker introduces a directive anywhere on the line.
const Marker = "CALL_FUNCTION:"

var (
	// ErrNoDirective means the marker is absent from the line.
	ErrNoDirective = errors.New("no directive present")
	// ErrMalformed means the marker is present but no opening
	// parenthesis follows it.
	ErrMalformed = errors.New("no directive recognized")
)

// Call is a parsed directive. A nil argument value is the parsed token
// "none" (case-insensitive), denoting an absent value.
type Call struct {
	Name string
	Args map[string]*string
}

// Parse extracts the function name and keyword arguments from one line.
func Parse(line string) (Call, error) {
	idx := strings.Index(line, Marker)
	if idx < 0 {
		return Call{}, ErrNoDirective
	}
	rest := strings.TrimSpace(line[idx+len(Marker):])

	open := strings.Index(rest, "(")
	if open < 0 {
		return Call{}, ErrMalformed
	}

	call := Call{
		Name: strings.TrimSpace(rest[:open]),
		Args: map[string]*string{},
	}
	// An unterminated call is accepted: without a closing parenthesis the
	// whole remainder is the argument string.
	argsStr := rest[open+1:]
	if end := strings.LastIndex(argsStr, ")"); end >= 0 {
		argsStr = argsStr[:end]
	}
	if strings.TrimSpace(argsStr) == "" {
		return call, nil
	}
	for _, piece := range strings.Split(argsStr, ",") {
		key, value, ok := strings.Cut(piece, "=")
		if !ok {
			continue
		}
		call.Args[strings.TrimSpace(key)] = parseValue(value)
	}
	return call, nil
}

func parseValue(raw string) *string {
	v := strings.TrimSpace(raw)
	v = unquote(v, '"')
	v = unquote(v, '\'')
	if strings.EqualFold(v, "none") {
		return nil
	}
	return &v
}

// unquote strips one layer of matching surrounding quotes.
func unquote(v string, q byte) string {
	if len(v) >= 2 && v[0] == q && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}
	return v
}
