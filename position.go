package linguaflow

import "strconv"

// Position is an immutable cursor into a source text. Line and Col are
// 1-based; Offset counts runes from the start of the input. Name and Text
// identify the input so that errors can be rendered against the original
// source long after scanning.
type Position struct {
	Offset int
	Line   int
	Col    int
	Name   string
	Text   string
}

// StartPos returns the position of the first rune of the named source text.
func StartPos(name, text string) Position {
	return Position{Offset: 0, Line: 1, Col: 1, Name: name, Text: text}
}

// Advance returns the position following p after reading ch. A newline
// increments the line and resets the column.
func (p Position) Advance(ch rune) Position {
	p.Offset++
	p.Col++
	if ch == '\n' {
		p.Line++
		p.Col = 1
	}
	return p
}

func (p Position) String() string {
	return p.Name + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// LineText returns the text of the line p points into, without a trailing
// newline. It is used when rendering error indicators.
func (p Position) LineText() string {
	start, line := 0, 1
	for i, r := range p.Text {
		if line == p.Line {
			start = i
			break
		}
		if r == '\n' {
			line++
			start = i + 1
		}
	}
	end := len(p.Text)
	for i := start; i < len(p.Text); i++ {
		if p.Text[i] == '\n' {
			end = i
			break
		}
	}
	return p.Text[start:end]
}
