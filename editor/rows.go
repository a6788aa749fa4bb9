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

const minGap = 32

// rowStore keeps rows in a gap buffer. Rows are usually added and removed
// near the previous edit, so the gap rarely moves far.
type rowStore struct {
	rows     []*Row
	gapStart int
	gapEnd   int
}

func newRowStore(rows []*Row) *rowStore {
	s := &rowStore{}
	s.rows = make([]*Row, len(rows)+minGap)
	copy(s.rows, rows)
	s.gapStart = len(rows)
	s.gapEnd = len(s.rows)
	return s
}

func (s *rowStore) Len() int {
	return len(s.rows) - (s.gapEnd - s.gapStart)
}

func (s *rowStore) At(i int) *Row {
	if i < s.gapStart {
		return s.rows[i]
	}
	return s.rows[i+s.gapEnd-s.gapStart]
}

// Insert adds r so that it becomes row i.
func (s *rowStore) Insert(i int, r *Row) {
	s.moveGap(i)
	if s.gapStart == s.gapEnd {
		s.grow()
	}
	s.rows[s.gapStart] = r
	s.gapStart++
}

// Remove deletes row i and returns it.
func (s *rowStore) Remove(i int) *Row {
	s.moveGap(i)
	r := s.rows[s.gapEnd]
	s.rows[s.gapEnd] = nil
	s.gapEnd++
	return r
}

func (s *rowStore) moveGap(i int) {
	switch {
	case i < s.gapStart:
		n := s.gapStart - i
		copy(s.rows[s.gapEnd-n:s.gapEnd], s.rows[i:s.gapStart])
		clear(s.rows[i:min(s.gapStart, s.gapEnd-n)])
		s.gapStart -= n
		s.gapEnd -= n
	case i > s.gapStart:
		n := i - s.gapStart
		copy(s.rows[s.gapStart:s.gapStart+n], s.rows[s.gapEnd:s.gapEnd+n])
		clear(s.rows[max(s.gapEnd, s.gapStart+n) : s.gapEnd+n])
		s.gapStart += n
		s.gapEnd += n
	}
}

func (s *rowStore) grow() {
	back := len(s.rows) - s.gapEnd
	rows := make([]*Row, 2*len(s.rows)+minGap)
	copy(rows, s.rows[:s.gapStart])
	copy(rows[len(rows)-back:], s.rows[s.gapEnd:])
	s.gapEnd = len(rows) - back
	s.rows = rows
}
