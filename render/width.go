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
	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 8

// CellWidth returns the number of cells a character occupies.
func CellWidth(c rune) int {
	w := runewidth.RuneWidth(c)
	if w < 1 {
		// control and combining characters are drawn as one cell
		return 1
	}
	return w
}

// Column returns the display column of character col in text.
// Tabs advance to the next multiple of tabWidth.
func Column(text []rune, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	x := 0
	for i, c := range text {
		if i >= col {
			break
		}
		x += advance(c, x, tabWidth)
	}
	if col > len(text) {
		x += col - len(text)
	}
	return x
}

func advance(c rune, x, tabWidth int) int {
	if c == '\t' {
		return tabWidth - x%tabWidth
	}
	return CellWidth(c)
}
