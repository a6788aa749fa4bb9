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

// A Viewport is the part of a document that is visible.
// Top is a row; Left is a display column.
type Viewport struct {
	Top    int
	Left   int
	Height int
	Width  int
}

// Scroll moves the viewport by the smallest amount that keeps the cursor
// visible. If the cursor is more than a full viewport away from the visible
// area, the viewport is centred on it instead.
func (v *Viewport) Scroll(row, col int) {
	v.Top = scrollAxis(v.Top, v.Height, row)
	v.Left = scrollAxis(v.Left, v.Width, col)
}

func scrollAxis(start, length, pos int) int {
	if length < 1 {
		return max(pos, 0)
	}
	switch {
	case pos < start-length || pos >= start+2*length:
		start = pos - length/2
	case pos < start:
		// scroll up
		start = pos
	case pos >= start+length:
		// scroll down
		start = pos - length + 1
	}
	return max(start, 0)
}
