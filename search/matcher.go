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
	"unicode"
)

// A Matcher decides whether a pattern matches text at an offset.
// It returns the length of the match in characters.
type Matcher interface {
	MatchAt(text []rune, offset int) (length int, ok bool)
}

// New returns the matcher for a typed pattern. A pattern with no upper
// case letters ignores case.
func New(pattern string) Matcher {
	for _, c := range pattern {
		if unicode.IsUpper(c) {
			return NewLiteral(pattern)
		}
	}
	return NewLiteralFold(pattern)
}

// Literal matches its characters exactly.
type Literal []rune

func NewLiteral(pattern string) Literal {
	return Literal(pattern)
}

func (l Literal) MatchAt(text []rune, offset int) (int, bool) {
	if len(l) == 0 || offset < 0 || offset+len(l) > len(text) {
		return 0, false
	}
	for i, c := range l {
		if text[offset+i] != c {
			return 0, false
		}
	}
	return len(l), true
}

// LiteralFold matches its characters ignoring case.
type LiteralFold []rune

func NewLiteralFold(pattern string) LiteralFold {
	return LiteralFold(pattern)
}

func (l LiteralFold) MatchAt(text []rune, offset int) (int, bool) {
	if len(l) == 0 || offset < 0 || offset+len(l) > len(text) {
		return 0, false
	}
	for i, c := range l {
		if !equalFold(text[offset+i], c) {
			return 0, false
		}
	}
	return len(l), true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.SimpleFold(a) == b || unicode.SimpleFold(b) == a ||
		unicode.ToLower(a) == unicode.ToLower(b)
}
