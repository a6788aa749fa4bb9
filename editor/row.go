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

// A row of text in the editor
type Row struct {
	Text []rune
}

func NewRow(text string) *Row {
	return &Row{Text: []rune(text)}
}

func (r *Row) DisplayText() string {
	return string(r.Text)
}

func (r *Row) Length() int {
	return len(r.Text)
}

// insert text at col; col must be in [0, Length()]
func (r *Row) Insert(col int, text []rune) {
	line := make([]rune, 0, len(r.Text)+len(text))
	line = append(line, r.Text[0:col]...)
	line = append(line, text...)
	line = append(line, r.Text[col:]...)
	r.Text = line
}

// delete the characters in [start, end) and return them
func (r *Row) Delete(start, end int) []rune {
	deleted := make([]rune, end-start)
	copy(deleted, r.Text[start:end])
	r.Text = append(r.Text[0:start], r.Text[end:]...)
	return deleted
}

// splits row at col, return a new row containing the remaining text.
func (r *Row) Split(col int) *Row {
	after := make([]rune, len(r.Text)-col)
	copy(after, r.Text[col:])
	r.Text = r.Text[0:col:col]
	return &Row{Text: after}
}

// joins rows by appending the passed-in row to the current row
func (r *Row) Join(other *Row) {
	r.Text = append(r.Text, other.Text...)
}

// returns the text after a specified column
func (r *Row) TextAfter(col int) string {
	if col < len(r.Text) {
		return string(r.Text[col:])
	} else {
		return ""
	}
}
