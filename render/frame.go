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
	gote "github.com/timburks/gote/types"
)

// A Cell is one character position on the screen.
// Ch is 0 in the cell covered by the right half of a wide character.
type Cell struct {
	Ch      rune
	Reverse bool
}

var blank = Cell{Ch: ' '}

// A Frame is a full screen of cells plus the cursor position.
type Frame struct {
	Size   gote.Size
	Cursor gote.Point
	cells  []Cell
}

func NewFrame(size gote.Size) *Frame {
	return newFrameFilled(size, blank)
}

func newFrameFilled(size gote.Size, c Cell) *Frame {
	size.Rows = max(size.Rows, 0)
	size.Cols = max(size.Cols, 0)
	f := &Frame{Size: size, cells: make([]Cell, size.Rows*size.Cols)}
	for i := range f.cells {
		f.cells[i] = c
	}
	return f
}

func (f *Frame) inside(row, col int) bool {
	return row >= 0 && row < f.Size.Rows && col >= 0 && col < f.Size.Cols
}

func (f *Frame) Get(row, col int) Cell {
	if !f.inside(row, col) {
		return Cell{}
	}
	return f.cells[row*f.Size.Cols+col]
}

func (f *Frame) Set(row, col int, c Cell) {
	if f.inside(row, col) {
		f.cells[row*f.Size.Cols+col] = c
	}
}

// Row returns the characters of a row as a string, skipping wide-character placeholders.
func (f *Frame) Row(row int) string {
	rs := make([]rune, 0, f.Size.Cols)
	for col := 0; col < f.Size.Cols; col++ {
		if c := f.Get(row, col); c.Ch != 0 {
			rs = append(rs, c.Ch)
		}
	}
	return string(rs)
}

// A Write sets one cell.
type Write struct {
	Row  int
	Col  int
	Cell Cell
}

// Diff returns the writes that turn prev into cur. If the frames differ in
// size, every cell of cur is written.
func Diff(prev, cur *Frame) []Write {
	if prev == nil || prev.Size != cur.Size {
		prev = newFrameFilled(cur.Size, Cell{Ch: -1})
	}
	var writes []Write
	for row := 0; row < cur.Size.Rows; row++ {
		for col := 0; col < cur.Size.Cols; col++ {
			c := cur.Get(row, col)
			if c != prev.Get(row, col) {
				writes = append(writes, Write{Row: row, Col: col, Cell: c})
			}
		}
	}
	return writes
}

// Apply performs writes on a frame.
func (f *Frame) Apply(writes []Write) {
	for _, w := range writes {
		f.Set(w.Row, w.Col, w.Cell)
	}
}
