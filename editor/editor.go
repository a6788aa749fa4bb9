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
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/timburks/gote/history"
	"github.com/timburks/gote/operations"
	"github.com/timburks/gote/render"
	"github.com/timburks/gote/search"
	gote "github.com/timburks/gote/types"
)

// The Editor is one editing session: a buffer, its history, the cursor,
// the viewport and the current search. Every change to the buffer goes
// through Perform or PerformBatch, which record it in the history.
type Editor struct {
	Buffer   *Buffer
	History  *history.History
	Search   search.State
	Viewport render.Viewport
	TabWidth int

	cursor    gote.Point
	fileName  string
	files     gote.FileStore
	anchor    *gote.Point // where the selection started, nil when nothing is selected
	pasteText string      // used to cut/copy and paste
	dirty     bool        // changed since the last load or save
	now       func() time.Time
	eventTime time.Time // when the keystroke being handled was read
}

func NewEditor(files gote.FileStore) *Editor {
	if files == nil {
		files = Disk{}
	}
	return &Editor{
		Buffer:   NewBuffer(),
		History:  history.New(),
		TabWidth: render.DefaultTabWidth,
		files:    files,
		now:      time.Now,
	}
}

// SetClock replaces the time source used to group typing.
func (e *Editor) SetClock(now func() time.Time) {
	e.now = now
}

// SetEventTime stamps the edits that follow with the time their keystroke
// was read. A zero time falls back to the clock.
func (e *Editor) SetEventTime(t time.Time) {
	e.eventTime = t
}

func (e *Editor) stamp() time.Time {
	if !e.eventTime.IsZero() {
		return e.eventTime
	}
	return e.now()
}

// ReadFile loads a file into a fresh buffer. A file that does not exist
// yet gives an empty buffer that will be created on save.
func (e *Editor) ReadFile(path string) error {
	b, err := e.files.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("%s does not exist, starting a new file", path)
		b, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	e.LoadBytes(b)
	e.fileName = path
	return nil
}

// LoadBytes replaces the document, clearing history and search state.
func (e *Editor) LoadBytes(b []byte) {
	e.Buffer.LoadBytes(b)
	e.History.Clear()
	e.Search.Reset()
	e.cursor = gote.Point{}
	e.anchor = nil
	e.Viewport.Top, e.Viewport.Left = 0, 0
	e.dirty = false
}

func (e *Editor) Bytes() []byte {
	return e.Buffer.Bytes()
}

// WriteFile saves the buffer. On failure nothing in the session changes.
func (e *Editor) WriteFile(path string) (int, error) {
	if path == "" {
		return 0, errors.New("no file name")
	}
	b := e.Bytes()
	if err := e.files.WriteFile(path, b); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("wrote %d bytes to %s", len(b), path)
	e.fileName = path
	e.dirty = false
	e.History.Close()
	return len(b), nil
}

// Save writes the buffer to the file it was read from.
func (e *Editor) Save() (int, error) {
	return e.WriteFile(e.fileName)
}

func (e *Editor) GetFileName() string {
	return e.fileName
}

func (e *Editor) SetFileName(name string) {
	e.fileName = name
}

func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) GetCursor() gote.Point {
	return e.cursor
}

// SetCursor moves the cursor, keeping it inside the document.
// Moving the cursor ends any run of typing and drops the selection.
func (e *Editor) SetCursor(cursor gote.Point) {
	e.anchor = nil
	e.moveTo(cursor)
}

func (e *Editor) moveTo(cursor gote.Point) {
	e.cursor = e.clamp(cursor)
	e.History.Close()
}

func (e *Editor) clamp(p gote.Point) gote.Point {
	p.Row = clipToRange(p.Row, 0, e.Buffer.LineCount()-1)
	p.Col = clipToRange(p.Col, 0, e.Buffer.LineLength(p.Row))
	return p
}

func clipToRange(i, min, max int) int {
	if i > max {
		i = max
	}
	if i < min {
		i = min
	}
	return i
}

// Perform applies one operation, records it, and leaves the cursor at after.
func (e *Editor) Perform(kind history.Kind, op gote.Operation, after gote.Point) error {
	before := e.cursor
	inverse, err := op.Perform(e.Buffer)
	if err != nil {
		log.Printf("%T failed: %v", op, err)
		return err
	}
	e.cursor = e.clamp(after)
	e.History.Add(kind, op, inverse, before, e.cursor, e.stamp())
	e.changed()
	return nil
}

// PerformBatch applies operations as a single undo step. If one of them
// fails, the ones already applied are reverted and nothing is recorded.
func (e *Editor) PerformBatch(kind history.Kind, ops []gote.Operation, after gote.Point) error {
	before := e.cursor
	batch := &operations.Sequence{Operations: ops}
	inverse, err := batch.Perform(e.Buffer)
	if err != nil {
		log.Printf("batch of %d operations failed: %v", len(ops), err)
		return err
	}
	e.cursor = e.clamp(after)
	e.History.Record(&history.Entry{
		Kind:       kind,
		Operations: []gote.Operation{batch},
		Inverses:   []gote.Operation{inverse},
		Before:     before,
		After:      e.cursor,
	})
	e.changed()
	return nil
}

func (e *Editor) changed() {
	e.dirty = true
	e.anchor = nil
	e.Search.Reset()
}

func (e *Editor) PerformUndo() error {
	cursor, err := e.History.Undo(e.Buffer, e.cursor)
	if err != nil {
		return err
	}
	e.cursor = e.clamp(cursor)
	e.changed()
	return nil
}

func (e *Editor) PerformRedo() error {
	cursor, err := e.History.Redo(e.Buffer)
	if err != nil {
		return err
	}
	e.cursor = e.clamp(cursor)
	e.changed()
	return nil
}

// These editor primitives make changes at the cursor.

func (e *Editor) InsertChar(c rune) error {
	if c == '\n' {
		return e.InsertNewline()
	}
	return e.InsertText(string(c))
}

// InsertText types text at the cursor; successive calls coalesce.
// Text typed over a selection replaces it.
func (e *Editor) InsertText(text string) error {
	if text == "" {
		return nil
	}
	if done, err := e.replaceSelection(history.KindReplace, text); done {
		return err
	}
	return e.Perform(history.KindInsert,
		&operations.InsertText{At: e.cursor, Text: text}, advance(e.cursor, text))
}

// InsertTab inserts spaces up to the next tab stop.
func (e *Editor) InsertTab() error {
	width := e.TabWidth
	if width < 1 {
		width = render.DefaultTabWidth
	}
	at := e.cursor
	if start, _, ok := e.Selection(); ok {
		at = start
	}
	return e.InsertText(strings.Repeat(" ", width-at.Col%width))
}

func (e *Editor) InsertNewline() error {
	if done, err := e.replaceSelection(history.KindReplace, "\n"); done {
		return err
	}
	return e.Perform(history.KindSplit,
		&operations.SplitLine{At: e.cursor}, gote.Point{Row: e.cursor.Row + 1})
}

// BackspaceChar deletes the character before the cursor, joining with
// the previous line at the start of a line. With a selection it deletes that.
func (e *Editor) BackspaceChar() error {
	if done, err := e.replaceSelection(history.KindDelete, ""); done {
		return err
	}
	c := e.cursor
	switch {
	case c.Col > 0:
		start := gote.Point{Row: c.Row, Col: c.Col - 1}
		return e.Perform(history.KindDelete, &operations.DeleteRange{Start: start, End: c}, start)
	case c.Row > 0:
		after := gote.Point{Row: c.Row - 1, Col: e.Buffer.LineLength(c.Row - 1)}
		return e.Perform(history.KindJoin, &operations.JoinLines{Row: c.Row - 1}, after)
	}
	return nil
}

// DeleteChar deletes the character under the cursor, joining with the
// next line at the end of a line. With a selection it deletes that.
func (e *Editor) DeleteChar() error {
	if done, err := e.replaceSelection(history.KindDelete, ""); done {
		return err
	}
	c := e.cursor
	switch {
	case c.Col < e.Buffer.LineLength(c.Row):
		end := gote.Point{Row: c.Row, Col: c.Col + 1}
		return e.Perform(history.KindDelete, &operations.DeleteRange{Start: c, End: end}, c)
	case c.Row < e.Buffer.LineCount()-1:
		return e.Perform(history.KindJoin, &operations.JoinLines{Row: c.Row}, c)
	}
	return nil
}

// CutRow removes the cursor row and puts it on the pasteboard.
func (e *Editor) CutRow() error {
	row := e.cursor.Row
	e.pasteText = e.Buffer.Line(row) + "\n"
	if e.Buffer.LineCount() == 1 && e.Buffer.LineLength(row) == 0 {
		e.History.Close()
		return nil
	}
	start := gote.Point{Row: row}
	end := gote.Point{Row: row + 1}
	switch {
	case row < e.Buffer.LineCount()-1:
	case row > 0:
		// the last row takes the newline before it
		start = gote.Point{Row: row - 1, Col: e.Buffer.LineLength(row - 1)}
		end = gote.Point{Row: row, Col: e.Buffer.LineLength(row)}
	default:
		end = gote.Point{Row: row, Col: e.Buffer.LineLength(row)}
	}
	return e.PerformBatch(history.KindCut,
		[]gote.Operation{&operations.DeleteRange{Start: start, End: end}}, gote.Point{Row: row})
}

// YankRow copies the cursor row to the pasteboard.
func (e *Editor) YankRow() {
	e.pasteText = e.Buffer.Line(e.cursor.Row) + "\n"
	e.History.Close()
}

// Cut moves the selection to the pasteboard, or the cursor row when
// nothing is selected.
func (e *Editor) Cut() error {
	start, end, ok := e.Selection()
	if !ok {
		return e.CutRow()
	}
	e.pasteText = e.Buffer.Slice(start, end)
	_, err := e.replaceSelection(history.KindCut, "")
	return err
}

// Copy copies the selection to the pasteboard, or the cursor row when
// nothing is selected. The selection stays.
func (e *Editor) Copy() {
	start, end, ok := e.Selection()
	if !ok {
		e.YankRow()
		return
	}
	e.pasteText = e.Buffer.Slice(start, end)
	e.History.Close()
}

// Paste inserts the pasteboard. Whole rows go above the cursor row.
// Pasting over a selection replaces it.
func (e *Editor) Paste() error {
	if e.pasteText == "" {
		return nil
	}
	if done, err := e.replaceSelection(history.KindPaste, e.pasteText); done {
		return err
	}
	at := e.cursor
	if strings.HasSuffix(e.pasteText, "\n") {
		at.Col = 0
	}
	return e.PerformBatch(history.KindPaste,
		[]gote.Operation{&operations.InsertText{At: at, Text: e.pasteText}}, advance(at, e.pasteText))
}

func (e *Editor) GetPasteText() string {
	return e.pasteText
}

func (e *Editor) SetPasteText(text string) {
	e.pasteText = text
}

// advance returns the position after text inserted at p.
func advance(p gote.Point, text string) gote.Point {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return gote.Point{Row: p.Row, Col: p.Col + len([]rune(text))}
	}
	return gote.Point{Row: p.Row + len(lines) - 1, Col: len([]rune(lines[len(lines)-1]))}
}

// Selection

// Select moves the cursor one step, extending the selection from where
// the cursor was when selecting began.
func (e *Editor) Select(direction int) {
	if e.anchor == nil {
		anchor := e.cursor
		e.anchor = &anchor
	}
	e.moveTo(e.step(direction, 1))
}

// Selection returns the selected range in document order.
// It reports false when the selection is empty.
func (e *Editor) Selection() (start, end gote.Point, ok bool) {
	if e.anchor == nil || *e.anchor == e.cursor {
		return gote.Point{}, gote.Point{}, false
	}
	start, end = *e.anchor, e.cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// replaceSelection replaces the selected text as a single undo step.
// It reports false when nothing is selected.
func (e *Editor) replaceSelection(kind history.Kind, text string) (bool, error) {
	start, end, ok := e.Selection()
	if !ok {
		return false, nil
	}
	ops := []gote.Operation{&operations.DeleteRange{Start: start, End: end}}
	if text != "" {
		ops = append(ops, &operations.InsertText{At: start, Text: text})
	}
	return true, e.PerformBatch(kind, ops, advance(start, text))
}

// Cursor movement isn't recorded, but it ends any run of typing.

func (e *Editor) MoveCursor(direction int, multiplier int) {
	e.SetCursor(e.step(direction, multiplier))
}

// step returns the cursor position after moving.
func (e *Editor) step(direction int, multiplier int) gote.Point {
	c := e.cursor
	for i := 0; i < multiplier; i++ {
		switch direction {
		case gote.MoveLeft:
			if c.Col > 0 {
				c.Col--
			} else if c.Row > 0 {
				c.Row--
				c.Col = e.Buffer.LineLength(c.Row)
			}
		case gote.MoveRight:
			if c.Col < e.Buffer.LineLength(c.Row) {
				c.Col++
			} else if c.Row < e.Buffer.LineCount()-1 {
				c.Row++
				c.Col = 0
			}
		case gote.MoveUp:
			if c.Row > 0 {
				c.Row--
			}
		case gote.MoveDown:
			if c.Row < e.Buffer.LineCount()-1 {
				c.Row++
			}
		}
	}
	return c
}

func (e *Editor) MoveToBeginningOfLine() {
	e.SetCursor(gote.Point{Row: e.cursor.Row})
}

func (e *Editor) MoveToEndOfLine() {
	e.SetCursor(gote.Point{Row: e.cursor.Row, Col: e.Buffer.LineLength(e.cursor.Row)})
}

func (e *Editor) MoveToStartOfDocument() {
	e.SetCursor(gote.Point{})
}

func (e *Editor) MoveToEndOfDocument() {
	e.SetCursor(e.Buffer.End())
}

func (e *Editor) PageUp() {
	e.MoveCursor(gote.MoveUp, max(e.Viewport.Height, 1))
}

func (e *Editor) PageDown() {
	e.MoveCursor(gote.MoveDown, max(e.Viewport.Height, 1))
}

func (e *Editor) SetSize(s gote.Size) {
	e.Viewport.Height = s.Rows
	e.Viewport.Width = s.Cols
}

// Scroll recomputes the viewport to keep the cursor onscreen.
func (e *Editor) Scroll() {
	col := render.Column(e.Buffer.LineRunes(e.cursor.Row), e.cursor.Col, e.TabWidth)
	e.Viewport.Scroll(e.cursor.Row, col)
}

// Searching

// PerformSearch finds pattern starting at the cursor and moves the cursor to
// the match.
func (e *Editor) PerformSearch(pattern string, dir search.Direction) (search.Match, error) {
	return e.find(pattern, e.cursor, dir)
}

// RepeatSearch finds the current pattern again. Searching forward starts one
// character past the cursor, so the match under the cursor is skipped.
func (e *Editor) RepeatSearch(dir search.Direction) (search.Match, error) {
	from := e.cursor
	if dir == search.Forward {
		// past the end of a row continues on the next one
		from.Col++
	}
	return e.find(e.Search.Pattern, from, dir)
}

func (e *Editor) find(pattern string, from gote.Point, dir search.Direction) (search.Match, error) {
	e.Search.SetPattern(pattern)
	if pattern == "" {
		return search.Match{}, gote.ErrNoMatch
	}
	m, err := search.Find(e.Buffer, search.New(pattern), from, dir)
	if err != nil {
		e.Search.Reset()
		return m, err
	}
	e.SetCursor(m.Start)
	e.Search.Found(m)
	return m, nil
}

// ReplaceAll replaces every match of pattern as a single undo step and
// returns the number of replacements.
func (e *Editor) ReplaceAll(pattern, text string) (int, error) {
	if pattern == "" {
		return 0, gote.ErrNoMatch
	}
	ops, count := search.ReplaceAll(e.Buffer, search.New(pattern), text)
	if count == 0 {
		return 0, gote.ErrNoMatch
	}
	if err := e.PerformBatch(history.KindReplace, ops, e.cursor); err != nil {
		return 0, err
	}
	return count, nil
}
