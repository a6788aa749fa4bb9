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
package search

import (
	"fmt"

	"github.com/timburks/gote/operations"
	gote "github.com/timburks/gote/types"
)

type Direction int

const (
	Forward Direction = iota
	Backward
)

// Document is the read-only view of a buffer that searches need.
type Document interface {
	LineCount() int
	LineRunes(i int) []rune
}

// A Match is a span [Start, End) on a single line.
type Match struct {
	Start   gote.Point
	End     gote.Point
	Wrapped bool // the search passed an end of the document to find it
}

// Find returns the first match starting at or after from (Forward), or
// strictly before from (Backward), continuing from the other end of the
// document once if needed.
func Find(d Document, m Matcher, from gote.Point, dir Direction) (Match, error) {
	if from.Row < 0 || from.Row >= d.LineCount() || from.Col < 0 {
		return Match{}, fmt.Errorf("search from %d,%d: %w", from.Row, from.Col, gote.ErrOutOfBounds)
	}
	if dir == Backward {
		return findBackward(d, m, from)
	}
	return findForward(d, m, from)
}

func findForward(d Document, m Matcher, from gote.Point) (Match, error) {
	n := d.LineCount()
	for row := from.Row; row < n; row++ {
		text := d.LineRunes(row)
		start := 0
		if row == from.Row {
			start = from.Col
		}
		if match, ok := scanForward(m, text, row, start, len(text)); ok {
			return match, nil
		}
	}
	for row := 0; row <= from.Row; row++ {
		text := d.LineRunes(row)
		stop := len(text)
		if row == from.Row {
			stop = min(from.Col, len(text)+1) - 1
		}
		if match, ok := scanForward(m, text, row, 0, stop); ok {
			match.Wrapped = true
			return match, nil
		}
	}
	return Match{}, gote.ErrNoMatch
}

func findBackward(d Document, m Matcher, from gote.Point) (Match, error) {
	n := d.LineCount()
	for row := from.Row; row >= 0; row-- {
		text := d.LineRunes(row)
		start := len(text)
		if row == from.Row {
			start = min(from.Col, len(text)+1) - 1
		}
		if match, ok := scanBackward(m, text, row, start, 0); ok {
			return match, nil
		}
	}
	for row := n - 1; row >= from.Row; row-- {
		text := d.LineRunes(row)
		stop := 0
		if row == from.Row {
			stop = from.Col
		}
		if match, ok := scanBackward(m, text, row, len(text), stop); ok {
			match.Wrapped = true
			return match, nil
		}
	}
	return Match{}, gote.ErrNoMatch
}

// scanForward tries offsets start..stop inclusive.
func scanForward(m Matcher, text []rune, row, start, stop int) (Match, bool) {
	for off := start; off <= stop; off++ {
		if length, ok := m.MatchAt(text, off); ok && length > 0 {
			return span(row, off, length), true
		}
	}
	return Match{}, false
}

// scanBackward tries offsets start down to stop inclusive.
func scanBackward(m Matcher, text []rune, row, start, stop int) (Match, bool) {
	for off := start; off >= stop; off-- {
		if length, ok := m.MatchAt(text, off); ok && length > 0 {
			return span(row, off, length), true
		}
	}
	return Match{}, false
}

func span(row, off, length int) Match {
	return Match{
		Start: gote.Point{Row: row, Col: off},
		End:   gote.Point{Row: row, Col: off + length},
	}
}

// FindAll returns every non-overlapping match in document order.
func FindAll(d Document, m Matcher) []Match {
	var matches []Match
	for row := 0; row < d.LineCount(); row++ {
		text := d.LineRunes(row)
		for off := 0; off < len(text); {
			if length, ok := m.MatchAt(text, off); ok && length > 0 {
				matches = append(matches, span(row, off, length))
				off += length
			} else {
				off++
			}
		}
	}
	return matches
}

// Replace returns the operations that replace a match with text.
func Replace(match Match, text string) []gote.Operation {
	return []gote.Operation{
		&operations.DeleteRange{Start: match.Start, End: match.End},
		&operations.InsertText{At: match.Start, Text: text},
	}
}

// ReplaceAll returns the operations that replace every match with text,
// and the number of matches. The operations run from the last match to the
// first, so each one's positions are unaffected by the ones before it and
// inserted text is never searched again.
func ReplaceAll(d Document, m Matcher, text string) ([]gote.Operation, int) {
	matches := FindAll(d, m)
	ops := make([]gote.Operation, 0, 2*len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		ops = append(ops, Replace(matches[i], text)...)
	}
	return ops, len(matches)
}

// State remembers the current search.
type State struct {
	Pattern string
	Last    *Match
	Wrapped bool
}

// SetPattern changes the pattern, forgetting the last match if it differs.
func (s *State) SetPattern(pattern string) {
	if pattern != s.Pattern {
		s.Pattern = pattern
		s.Reset()
	}
}

// Found records a match.
func (s *State) Found(m Match) {
	s.Last = &m
	s.Wrapped = m.Wrapped
}

// Reset forgets the last match.
func (s *State) Reset() {
	s.Last = nil
	s.Wrapped = false
}
