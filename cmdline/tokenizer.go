// Package cmdline turns raw command-line strings into argument tokens and
// partitions them into switches and positional parameters.
package cmdline

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quoted region is still open at the
	// end of the line.
	ErrUnclosedQuote = errors.New("unclosed quote")

	// ErrTrailingEscape is returned when the line ends on a bare backslash
	// with nothing left to escape.
	ErrTrailingEscape = errors.New("trailing escape character")
)

type tokenizeState int

const (
	stateOutside tokenizeState = iota
	stateSingleQuote
	stateDoubleQuote
)

// Tokenize splits a raw command line into argument tokens, honoring single
// and double quoting and backslash escapes.
//
// Whitespace runs separate tokens except inside quoted regions, where they
// are preserved literally. Outside quotes a backslash escapes the next
// character. Inside double quotes a backslash escapes only the quote
// character and the backslash itself; any other backslash stays literal.
// Single quotes preserve everything up to the closing quote.
//
// Malformed syntax is an explicit error: an unterminated quote yields
// ErrUnclosedQuote and a dangling escape yields ErrTrailingEscape.
func Tokenize(line string) ([]string, error) {
	tokens := []string{}
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	state := stateOutside
	escaped := false

	for _, r := range line {
		if escaped {
			if state == stateDoubleQuote && r != '"' && r != '\\' {
				buf.WriteRune('\\')
			}
			buf.WriteRune(r)
			escaped = false
			continue
		}

		switch state {
		case stateOutside:
			switch {
			case unicode.IsSpace(r):
				flush()
			case r == '\'':
				state = stateSingleQuote
			case r == '"':
				state = stateDoubleQuote
			case r == '\\':
				escaped = true
			default:
				buf.WriteRune(r)
			}

		case stateSingleQuote:
			if r == '\'' {
				state = stateOutside
			} else {
				buf.WriteRune(r)
			}

		case stateDoubleQuote:
			switch r {
			case '"':
				state = stateOutside
			case '\\':
				escaped = true
			default:
				buf.WriteRune(r)
			}
		}
	}

	if state != stateOutside {
		return nil, ErrUnclosedQuote
	}
	if escaped {
		return nil, ErrTrailingEscape
	}
	flush()
	return tokens, nil
}
