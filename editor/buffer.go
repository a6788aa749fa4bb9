//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"fmt"
	"strings"

	gote "github.com/timburks/gote/types"
)

// A Buffer holds the text of a document as a sequence of rows.
// There is always at least one row. The buffer knows nothing about
// cursors or history; callers change it only through the four
// edit primitives, which check their arguments before touching any row.
type Buffer struct {
	rows *rowStore
	crlf bool // rows were separated by "\r\n" when loaded
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	b.rows = newRowStore([]*Row{NewRow("")})
	return b
}

func NewBufferWithText(text string) *Buffer {
	b := NewBuffer()
	b.LoadBytes([]byte(text))
	return b
}

func (b *Buffer) LoadBytes(bytes []byte) {
	lines := strings.Split(string(bytes), "\n")
	b.crlf = len(lines) > 1
	for _, line := range lines[:len(lines)-1] {
		if !strings.HasSuffix(line, "\r") {
			b.crlf = false
			break
		}
	}
	rows := make([]*Row, 0, len(lines))
	for i, line := range lines {
		if b.crlf && i < len(lines)-1 {
			line = strings.TrimSuffix(line, "\r")
		}
		rows = append(rows, NewRow(line))
	}
	b.rows = newRowStore(rows)
}

func (b *Buffer) Bytes() []byte {
	return []byte(b.text(b.lineSeparator()))
}

// Text returns the document with rows separated by "\n".
func (b *Buffer) Text() string {
	return b.text("\n")
}

func (b *Buffer) text(separator string) string {
	var s strings.Builder
	for i := 0; i < b.rows.Len(); i++ {
		if i > 0 {
			s.WriteString(separator)
		}
		s.WriteString(string(b.rows.At(i).Text))
	}
	return s.String()
}

func (b *Buffer) lineSeparator() string {
	if b.crlf {
		return "\r\n"
	}
	return "\n"
}

// Lines returns a copy of every row as a string.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.rows.Len())
	for i := range lines {
		lines[i] = b.Line(i)
	}
	return lines
}

func (b *Buffer) LineCount() int {
	return b.rows.Len()
}

func (b *Buffer) Line(i int) string {
	if i < 0 || i >= b.rows.Len() {
		return ""
	}
	return string(b.rows.At(i).Text)
}

// LineRunes returns the characters of row i. The slice must not be modified.
func (b *Buffer) LineRunes(i int) []rune {
	if i < 0 || i >= b.rows.Len() {
		return nil
	}
	return b.rows.At(i).Text
}

func (b *Buffer) LineLength(i int) int {
	if i < 0 || i >= b.rows.Len() {
		return 0
	}
	return b.rows.At(i).Length()
}

// Valid reports whether p is a valid insertion point.
func (b *Buffer) Valid(p gote.Point) bool {
	return p.Row >= 0 && p.Row < b.rows.Len() && p.Col >= 0 && p.Col <= b.rows.At(p.Row).Length()
}

// End returns the position after the last character of the document.
func (b *Buffer) End() gote.Point {
	last := b.rows.Len() - 1
	return gote.Point{Row: last, Col: b.rows.At(last).Length()}
}

// Slice returns the characters in [start, end), rows joined by newlines.
// Both positions must be valid and in order.
func (b *Buffer) Slice(start, end gote.Point) string {
	first := b.rows.At(start.Row).Text
	if start.Row == end.Row {
		return string(first[start.Col:end.Col])
	}
	var s strings.Builder
	s.WriteString(string(first[start.Col:]))
	for i := start.Row + 1; i < end.Row; i++ {
		s.WriteString("\n")
		s.WriteString(string(b.rows.At(i).Text))
	}
	s.WriteString("\n")
	s.WriteString(string(b.rows.At(end.Row).Text[:end.Col]))
	return s.String()
}

// InsertText inserts text at a position and returns the position just past
// the inserted text. Newlines in text create new rows.
func (b *Buffer) InsertText(at gote.Point, text string) (gote.Point, error) {
	if !b.Valid(at) {
		return at, fmt.Errorf("insert at %d,%d: %w", at.Row, at.Col, gote.ErrOutOfBounds)
	}
	parts := strings.Split(text, "\n")
	row := b.rows.At(at.Row)
	if len(parts) == 1 {
		inserted := []rune(text)
		row.Insert(at.Col, inserted)
		return gote.Point{Row: at.Row, Col: at.Col + len(inserted)}, nil
	}
	tail := row.Split(at.Col)
	row.Join(NewRow(parts[0]))
	for i, part := range parts[1 : len(parts)-1] {
		b.rows.Insert(at.Row+1+i, NewRow(part))
	}
	last := NewRow(parts[len(parts)-1])
	end := gote.Point{Row: at.Row + len(parts) - 1, Col: last.Length()}
	last.Join(tail)
	b.rows.Insert(end.Row, last)
	return end, nil
}

// DeleteRange removes the characters in [start, end) and returns them.
// A range that crosses rows joins the first and last rows.
func (b *Buffer) DeleteRange(start, end gote.Point) (string, error) {
	if !b.Valid(start) {
		return "", fmt.Errorf("delete from %d,%d: %w", start.Row, start.Col, gote.ErrOutOfBounds)
	}
	if !b.Valid(end) {
		return "", fmt.Errorf("delete to %d,%d: %w", end.Row, end.Col, gote.ErrOutOfBounds)
	}
	if end.Before(start) {
		return "", fmt.Errorf("delete %d,%d to %d,%d: %w", start.Row, start.Col, end.Row, end.Col, gote.ErrInvalidRange)
	}
	first := b.rows.At(start.Row)
	if start.Row == end.Row {
		return string(first.Delete(start.Col, end.Col)), nil
	}
	var deleted strings.Builder
	deleted.WriteString(first.TextAfter(start.Col))
	first.Delete(start.Col, first.Length())
	for i := start.Row + 1; i <= end.Row; i++ {
		// rows shift up as they are removed
		r := b.rows.Remove(start.Row + 1)
		deleted.WriteString("\n")
		if i < end.Row {
			deleted.WriteString(string(r.Text))
		} else {
			deleted.WriteString(string(r.Text[:end.Col]))
			first.Join(&Row{Text: r.Text[end.Col:]})
		}
	}
	return deleted.String(), nil
}

// SplitLine breaks a row in two at a position.
func (b *Buffer) SplitLine(at gote.Point) error {
	if !b.Valid(at) {
		return fmt.Errorf("split at %d,%d: %w", at.Row, at.Col, gote.ErrOutOfBounds)
	}
	b.rows.Insert(at.Row+1, b.rows.At(at.Row).Split(at.Col))
	return nil
}

// JoinLines appends row i+1 to row i and returns the column where they meet.
func (b *Buffer) JoinLines(i int) (int, error) {
	if i < 0 || i >= b.rows.Len()-1 {
		return 0, fmt.Errorf("join row %d of %d: %w", i, b.rows.Len(), gote.ErrOutOfBounds)
	}
	row := b.rows.At(i)
	col := row.Length()
	row.Join(b.rows.Remove(i + 1))
	return col, nil
}
