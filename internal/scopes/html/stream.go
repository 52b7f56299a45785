// Package html tokenizes HTML-like text into tag boundary events and turns
// those events into context, comment, and class attribute scopes.
package html

import (
	"fmt"
	"strings"

	"bennypowers.dev/twls/internal/scopes"
)

// EventKind identifies a piece of tag structure
type EventKind int

const (
	// ElementStart covers `<tag` or `</tag` up to whitespace or `>`
	ElementStart EventKind = iota
	// ElementEnd covers the `>` closing a tag
	ElementEnd
	// AttrName covers an attribute name up to its `=`
	AttrName
	// AttrValue covers the text between an attribute value's quotes
	AttrValue
	// AttrExpr covers the text between an attribute expression's braces
	AttrExpr
	// CommentStart covers `<!--`
	CommentStart
	// CommentEnd covers `-->`
	CommentEnd
)

var eventKindNames = [...]string{
	ElementStart: "element-start",
	ElementEnd:   "element-end",
	AttrName:     "attr-name",
	AttrValue:    "attr-value",
	AttrExpr:     "attr-expr",
	CommentStart: "comment-start",
	CommentEnd:   "comment-end",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is a single boundary found while streaming over HTML
type Event struct {
	Kind EventKind
	Span scopes.Span
}

type streamState int

const (
	stateIdle streamState = iota
	stateAttrs
	stateComment
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Stream scans input in a single forward pass and returns its tag events.
// Spans are shifted by offset so they are absolute in the enclosing document.
// Unterminated constructs produce no event.
func Stream(input string, offset int) []Event {
	var events []Event
	state := stateIdle

	emit := func(kind EventKind, start, end int) {
		events = append(events, Event{
			Kind: kind,
			Span: scopes.Span{Start: start + offset, End: end + offset},
		})
	}

next:
	for i := 0; i < len(input); i++ {
		c := input[i]

		switch state {
		case stateIdle:
			if c != '<' {
				continue
			}
			for j := i; j < len(input); j++ {
				peek := input[j]
				switch {
				case peek == '>':
					emit(ElementStart, i, j)
					emit(ElementEnd, j, j+1)
					i = j
					continue next
				case peek == '!' && strings.HasPrefix(input[j:], "!--"):
					emit(CommentStart, i, j+3)
					state = stateComment
					i = j + 3
					continue next
				case isSpace(peek):
					emit(ElementStart, i, j)
					state = stateAttrs
					i = j
					continue next
				}
			}
			// No later `<` can terminate either
			break next

		case stateComment:
			k := strings.Index(input[i:], "-->")
			if k < 0 {
				break next
			}
			k += i
			emit(CommentEnd, k, k+3)
			state = stateIdle
			i = k + 2

		case stateAttrs:
			if c == '>' {
				emit(ElementEnd, i, i+1)
				state = stateIdle
				continue
			}
			if isSpace(c) {
				continue
			}

			for j := i; j < len(input); j++ {
				switch peek := input[j]; peek {
				case '=':
					emit(AttrName, i, j)
					i = j
					continue next
				case '>':
					emit(ElementEnd, i, j+1)
					state = stateIdle
					i = j
					continue next
				case '\'', '"', '`':
					if k := strings.IndexByte(input[j+1:], peek); k >= 0 {
						k += j + 1
						emit(AttrValue, j+1, k)
						i = k
						continue next
					}
				case '{':
					depth := 1
					for k := j + 1; k < len(input); k++ {
						switch input[k] {
						case '{':
							depth++
						case '}':
							depth--
							if depth == 0 {
								emit(AttrExpr, j+1, k)
								i = k
								continue next
							}
						}
					}
				}
			}
			// Scanning from a later position would find nothing new
			break next
		}
	}

	return events
}
