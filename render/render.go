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
package render

import (
	"fmt"

	gote "github.com/timburks/gote/types"
)

// Document is the read-only view of a buffer that rendering needs.
type Document interface {
	LineCount() int
	LineRunes(i int) []rune
}

// State is everything that appears on the screen.
type State struct {
	Size      gote.Size // whole screen
	Doc       Document
	Cursor    gote.Point // document position of the cursor
	Viewport  Viewport   // already scrolled to show the cursor
	Selection Selection
	TabWidth  int
	Info      string // left side of the info bar
	Position  string // right side of the info bar
	Message   string // message bar: status or prompt
	Prompt    bool   // the cursor belongs at the end of Message
}

// A Selection is the highlighted range [Start, End) of the document.
type Selection struct {
	Start gote.Point
	End   gote.Point
}

func (s Selection) contains(p gote.Point) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

// TextRows returns the number of screen rows available for text.
func TextRows(size gote.Size) int {
	return max(size.Rows-2, 0)
}

// Compose draws a state into a new frame.
func Compose(s State) *Frame {
	f := NewFrame(s.Size)
	v := s.Viewport
	rows := min(v.Height, TextRows(s.Size))
	for i := 0; i < rows; i++ {
		row := v.Top + i
		if row < s.Doc.LineCount() {
			selected := func(col int) bool {
				return s.Selection.contains(gote.Point{Row: row, Col: col})
			}
			drawLine(f, i, s.Doc.LineRunes(row), v.Left, s.Size.Cols, s.TabWidth, selected)
		} else {
			f.Set(i, 0, Cell{Ch: '~'})
		}
	}
	if s.Size.Rows >= 2 {
		drawInfoBar(f, s.Size.Rows-2, s.Info, s.Position)
	}
	if s.Size.Rows >= 1 {
		drawText(f, s.Size.Rows-1, s.Message, false)
	}
	if s.Prompt {
		f.Cursor = gote.Point{Row: s.Size.Rows - 1, Col: min(textWidth(s.Message), max(s.Size.Cols-1, 0))}
	} else {
		col := Column(s.Doc.LineRunes(s.Cursor.Row), s.Cursor.Col, s.TabWidth)
		f.Cursor = gote.Point{Row: s.Cursor.Row - v.Top, Col: col - v.Left}
	}
	return f
}

// drawLine draws the part of text that starts at display column left.
// Selected characters are drawn in reverse video, and a selected line end
// as one reversed blank after the text.
func drawLine(f *Frame, row int, text []rune, left, width, tabWidth int, selected func(col int) bool) {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	x := 0
	for i, c := range text {
		if x >= left+width {
			return
		}
		w := advance(c, x, tabWidth)
		reverse := selected(i)
		space := Cell{Ch: ' ', Reverse: reverse}
		switch {
		case c == '\t':
			for j := 0; j < w; j++ {
				f.Set(row, x+j-left, space)
			}
		case w == 2 && x >= left && x+1 < left+width:
			f.Set(row, x-left, Cell{Ch: c, Reverse: reverse})
			f.Set(row, x+1-left, Cell{Ch: 0, Reverse: reverse})
		case w == 2:
			// clipped by an edge
			if x >= left {
				f.Set(row, x-left, space)
			} else if x+1 >= left {
				f.Set(row, x+1-left, space)
			}
		default:
			if x >= left {
				f.Set(row, x-left, Cell{Ch: printable(c), Reverse: reverse})
			}
		}
		x += w
	}
	if x >= left && selected(len(text)) {
		f.Set(row, x-left, Cell{Ch: ' ', Reverse: true})
	}
}

func printable(c rune) rune {
	if c < ' ' || c == 0x7f {
		return '?'
	}
	return c
}

// Draw the info bar as a single reversed line with the position on the right.
func drawInfoBar(f *Frame, row int, info, position string) {
	width := f.Size.Cols
	text := []rune(info)
	right := []rune(position)
	for len(text) < width-len(right) {
		text = append(text, ' ')
	}
	text = append(text, right...)
	drawText(f, row, string(text), true)
	for col := textWidth(string(text)); col < width; col++ {
		f.Set(row, col, Cell{Ch: ' ', Reverse: true})
	}
}

func drawText(f *Frame, row int, text string, reverse bool) {
	x := 0
	for _, c := range text {
		w := CellWidth(c)
		if x+w > f.Size.Cols {
			return
		}
		f.Set(row, x, Cell{Ch: printable(c), Reverse: reverse})
		if w == 2 {
			f.Set(row, x+1, Cell{Ch: 0, Reverse: reverse})
		}
		x += w
	}
}

func textWidth(text string) int {
	w := 0
	for _, c := range text {
		w += CellWidth(c)
	}
	return w
}

// FormatPosition returns the right side of the info bar.
func FormatPosition(cursor gote.Point, rows int) string {
	return fmt.Sprintf(" %d:%d %d/%d ", cursor.Row+1, cursor.Col+1, cursor.Row+1, rows)
}

// A Renderer draws frames, writing only what changed since the last one.
type Renderer struct {
	previous *Frame
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Invalidate makes the next frame redraw every cell.
func (r *Renderer) Invalidate() {
	r.previous = nil
}

// Render draws a state on a display and returns the writes it made.
func (r *Renderer) Render(d gote.Display, s State) ([]Write, error) {
	f := Compose(s)
	writes := Diff(r.previous, f)
	for _, w := range writes {
		d.SetCell(w.Col, w.Row, w.Cell.Ch, w.Cell.Reverse)
	}
	d.SetCursor(f.Cursor)
	if err := d.Flush(); err != nil {
		r.previous = nil
		return writes, err
	}
	r.previous = f
	return writes, nil
}
