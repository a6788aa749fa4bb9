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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gote "github.com/timburks/gote/types"
)

func TestLoadBytes(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		lines []string
	}{
		{"empty", "", []string{""}},
		{"one line", "hello", []string{"hello"}},
		{"trailing newline", "a\nb\n", []string{"a", "b", ""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"mixed endings keep the carriage return", "a\r\nb\nc", []string{"a\r", "b", "c"}},
		{"unicode", "héllo\n世界", []string{"héllo", "世界"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBufferWithText(tc.input)
			assert.Equal(t, tc.lines, b.Lines())
			assert.Equal(t, tc.input, string(b.Bytes()))
		})
	}
}

func TestCRLFPreservedAfterEdit(t *testing.T) {
	b := NewBufferWithText("a\r\nb\r\n")
	_, err := b.InsertText(gote.Point{Row: 1, Col: 1}, "c\nd")
	require.NoError(t, err)
	assert.Equal(t, "a\r\nbc\r\nd\r\n", string(b.Bytes()))
	assert.Equal(t, "a\nbc\nd\n", b.Text())
}

func TestLineLengthCountsCharacters(t *testing.T) {
	b := NewBufferWithText("héllo\n世界")
	assert.Equal(t, 5, b.LineLength(0))
	assert.Equal(t, 2, b.LineLength(1))
	assert.Equal(t, 0, b.LineLength(5))
	assert.Equal(t, "", b.Line(-1))
	assert.Equal(t, gote.Point{Row: 1, Col: 2}, b.End())
}

func TestInsertText(t *testing.T) {
	b := NewBufferWithText("hello world")
	end, err := b.InsertText(gote.Point{Row: 0, Col: 5}, ",")
	require.NoError(t, err)
	assert.Equal(t, gote.Point{Row: 0, Col: 6}, end)
	assert.Equal(t, "hello, world", b.Text())

	end, err = b.InsertText(gote.Point{Row: 0, Col: 6}, "\nbig\nwide")
	require.NoError(t, err)
	assert.Equal(t, gote.Point{Row: 2, Col: 4}, end)
	assert.Equal(t, []string{"hello,", "big", "wide world"}, b.Lines())

	end, err = b.InsertText(gote.Point{Row: 2, Col: 10}, "\n")
	require.NoError(t, err)
	assert.Equal(t, gote.Point{Row: 3, Col: 0}, end)
	assert.Equal(t, 4, b.LineCount())
}

func TestInsertTextOutOfBounds(t *testing.T) {
	b := NewBufferWithText("abc")
	for _, p := range []gote.Point{{Row: 0, Col: 4}, {Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: -1}} {
		_, err := b.InsertText(p, "x")
		assert.ErrorIs(t, err, gote.ErrOutOfBounds, "%v", p)
	}
	assert.Equal(t, "abc", b.Text())
}

func TestDeleteRange(t *testing.T) {
	b := NewBufferWithText("one\ntwo\nthree")
	deleted, err := b.DeleteRange(gote.Point{Row: 0, Col: 1}, gote.Point{Row: 0, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, "ne", deleted)
	assert.Equal(t, "o\ntwo\nthree", b.Text())

	deleted, err = b.DeleteRange(gote.Point{Row: 0, Col: 1}, gote.Point{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, "\ntwo\nth", deleted)
	assert.Equal(t, []string{"oree"}, b.Lines())

	deleted, err = b.DeleteRange(gote.Point{Row: 0, Col: 2}, gote.Point{Row: 0, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, "", deleted)
}

func TestDeleteRangeErrors(t *testing.T) {
	b := NewBufferWithText("one\ntwo")
	_, err := b.DeleteRange(gote.Point{Row: 0, Col: 2}, gote.Point{Row: 0, Col: 1})
	assert.ErrorIs(t, err, gote.ErrInvalidRange)
	_, err = b.DeleteRange(gote.Point{Row: 1, Col: 0}, gote.Point{Row: 0, Col: 3})
	assert.ErrorIs(t, err, gote.ErrInvalidRange)
	_, err = b.DeleteRange(gote.Point{Row: 0, Col: 0}, gote.Point{Row: 2, Col: 0})
	assert.ErrorIs(t, err, gote.ErrOutOfBounds)
	_, err = b.DeleteRange(gote.Point{Row: 0, Col: 9}, gote.Point{Row: 1, Col: 0})
	assert.ErrorIs(t, err, gote.ErrOutOfBounds)
	assert.Equal(t, "one\ntwo", b.Text())
}

func TestSplitAndJoin(t *testing.T) {
	b := NewBufferWithText("helloworld")
	require.NoError(t, b.SplitLine(gote.Point{Row: 0, Col: 5}))
	assert.Equal(t, []string{"hello", "world"}, b.Lines())

	col, err := b.JoinLines(0)
	require.NoError(t, err)
	assert.Equal(t, 5, col)
	assert.Equal(t, []string{"helloworld"}, b.Lines())

	_, err = b.JoinLines(0)
	assert.ErrorIs(t, err, gote.ErrOutOfBounds)
	assert.ErrorIs(t, b.SplitLine(gote.Point{Row: 0, Col: 11}), gote.ErrOutOfBounds)

	require.NoError(t, b.SplitLine(gote.Point{Row: 0, Col: 10}))
	assert.Equal(t, []string{"helloworld", ""}, b.Lines())
}

func TestRowSplitDoesNotAlias(t *testing.T) {
	r := NewRow("abcdef")
	tail := r.Split(3)
	r.Insert(3, []rune("XYZ"))
	assert.Equal(t, "abcXYZ", r.DisplayText())
	assert.Equal(t, "def", tail.DisplayText())
	assert.Equal(t, "XYZ", r.TextAfter(3))
	assert.Equal(t, "", r.TextAfter(6))

	deleted := r.Delete(0, 3)
	r.Insert(0, []rune("123"))
	assert.Equal(t, "abc", string(deleted))
}
