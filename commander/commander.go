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
package commander

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"unicode/utf8"

	"github.com/timburks/gote/editor"
	"github.com/timburks/gote/keymap"
	"github.com/timburks/gote/render"
	"github.com/timburks/gote/search"
	gote "github.com/timburks/gote/types"
)

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor      *editor.Editor
	table       keymap.Table
	mode        gote.Mode
	searchText  string           // text for searches as it is being typed
	searchDir   search.Direction // direction of the search being typed
	replaceText string           // replacement as it is being typed
	replacing   bool             // the replace prompt is reading the replacement
	fileText    string           // file name as it is being typed
	message     string           // status message
}

func NewCommander(e *editor.Editor, table keymap.Table) *Commander {
	if table == nil {
		table = keymap.Default()
	}
	return &Commander{editor: e, table: table, mode: gote.ModeEdit}
}

func (c *Commander) GetMode() gote.Mode {
	return c.mode
}

// setMode switches modes. A mode switch ends any run of typing.
func (c *Commander) setMode(m gote.Mode) {
	c.mode = m
	c.editor.History.Close()
}

func (c *Commander) IsRunning() bool {
	return c.mode != gote.ModeQuit
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) GetSearchText() string {
	return c.searchText
}

func (c *Commander) ProcessEvent(event gote.Event) {
	switch event.Type {
	case gote.EventKey:
		c.editor.SetEventTime(event.Time)
		c.ProcessKey(event)
	case gote.EventResize:
		c.ProcessResize(event)
	case gote.EventError:
		if event.Err != nil {
			log.Printf("input error: %v", event.Err)
			c.message = event.Err.Error()
		}
	}
}

func (c *Commander) ProcessResize(event gote.Event) {
	c.editor.SetSize(gote.Size{Rows: render.TextRows(event.Size), Cols: event.Size.Cols})
	c.editor.Scroll()
}

func (c *Commander) ProcessKey(event gote.Event) {
	switch c.mode {
	case gote.ModeEdit:
		c.ProcessKeyEditMode(event)
	case gote.ModeSearch:
		c.ProcessKeySearchMode(event)
	case gote.ModeReplace:
		c.ProcessKeyReplaceMode(event)
	case gote.ModeConfirmExit:
		c.ProcessKeyConfirmExitMode(event)
	case gote.ModeSaveAs:
		c.ProcessKeySaveAsMode(event)
	}
}

func (c *Commander) ProcessKeyEditMode(event gote.Event) {
	action, ok := c.table.Lookup(event)
	if !ok {
		if ch, ok := typed(event); ok {
			c.message = ""
			c.report(c.editor.InsertChar(ch))
		}
		return
	}
	c.message = ""
	c.Perform(action)
}

// Perform runs one named action in edit mode.
func (c *Commander) Perform(action keymap.Action) {
	e := c.editor
	switch action {
	case keymap.MoveUp:
		e.MoveCursor(gote.MoveUp, 1)
	case keymap.MoveDown:
		e.MoveCursor(gote.MoveDown, 1)
	case keymap.MoveLeft:
		e.MoveCursor(gote.MoveLeft, 1)
	case keymap.MoveRight:
		e.MoveCursor(gote.MoveRight, 1)
	case keymap.LineStart:
		e.MoveToBeginningOfLine()
	case keymap.LineEnd:
		e.MoveToEndOfLine()
	case keymap.PageUp:
		e.PageUp()
	case keymap.PageDown:
		e.PageDown()
	case keymap.DocStart:
		e.MoveToStartOfDocument()
	case keymap.DocEnd:
		e.MoveToEndOfDocument()
	case keymap.SelectUp:
		e.Select(gote.MoveUp)
	case keymap.SelectDown:
		e.Select(gote.MoveDown)
	case keymap.SelectLeft:
		e.Select(gote.MoveLeft)
	case keymap.SelectRight:
		e.Select(gote.MoveRight)
	case keymap.Newline:
		c.report(e.InsertNewline())
	case keymap.Tab:
		c.report(e.InsertTab())
	case keymap.Backspace:
		c.report(e.BackspaceChar())
	case keymap.Delete:
		c.report(e.DeleteChar())
	case keymap.Undo:
		c.report(e.PerformUndo())
	case keymap.Redo:
		c.report(e.PerformRedo())
	case keymap.Find:
		c.setMode(gote.ModeSearch)
		c.searchText = ""
		c.searchDir = search.Forward
	case keymap.FindNext:
		c.repeatSearch(search.Forward)
	case keymap.FindPrevious:
		c.repeatSearch(search.Backward)
	case keymap.Replace:
		c.setMode(gote.ModeReplace)
		c.searchText = ""
		c.replaceText = ""
		c.replacing = false
	case keymap.ReplaceAll:
		if e.Search.Pattern == "" {
			c.Perform(keymap.Replace)
			return
		}
		c.setMode(gote.ModeReplace)
		c.searchText = e.Search.Pattern
		c.replaceText = ""
		c.replacing = true
	case keymap.Cut:
		c.report(e.Cut())
	case keymap.Copy:
		e.Copy()
	case keymap.CutLine:
		c.report(e.CutRow())
	case keymap.CopyLine:
		e.YankRow()
	case keymap.Paste:
		c.report(e.Paste())
	case keymap.Save:
		c.save()
	case keymap.Quit:
		if e.Dirty() {
			c.setMode(gote.ModeConfirmExit)
			c.message = "Unsaved changes. Quit anyway? (y/n)"
		} else {
			c.setMode(gote.ModeQuit)
		}
	}
}

func (c *Commander) ProcessKeySearchMode(event gote.Event) {
	switch event.Key {
	case gote.KeyEsc:
		c.setMode(gote.ModeEdit)
		c.message = ""
	case gote.KeyEnter:
		c.setMode(gote.ModeEdit)
		c.search(c.searchText, c.searchDir)
	default:
		edit(&c.searchText, event)
	}
}

func (c *Commander) ProcessKeyReplaceMode(event gote.Event) {
	text := &c.searchText
	if c.replacing {
		text = &c.replaceText
	}
	switch event.Key {
	case gote.KeyEsc:
		c.setMode(gote.ModeEdit)
		c.message = ""
	case gote.KeyEnter:
		if !c.replacing {
			c.replacing = true
			return
		}
		c.setMode(gote.ModeEdit)
		c.replaceAll(c.searchText, c.replaceText)
	default:
		edit(text, event)
	}
}

// ProcessKeySaveAsMode reads a file name for a buffer that has none.
func (c *Commander) ProcessKeySaveAsMode(event gote.Event) {
	switch event.Key {
	case gote.KeyEsc:
		c.setMode(gote.ModeEdit)
		c.message = ""
	case gote.KeyEnter:
		c.setMode(gote.ModeEdit)
		name := c.fileText
		if name == "" {
			name = untitled
		}
		c.write(name)
	default:
		edit(&c.fileText, event)
	}
}

func (c *Commander) ProcessKeyConfirmExitMode(event gote.Event) {
	if event.Key == gote.KeyEsc {
		c.setMode(gote.ModeEdit)
		c.message = ""
		return
	}
	if event.Key != gote.KeyNone {
		return
	}
	switch event.Ch {
	case 'y', 'Y':
		c.setMode(gote.ModeQuit)
	case 'n', 'N':
		c.setMode(gote.ModeEdit)
		c.message = ""
	}
}

func (c *Commander) search(pattern string, dir search.Direction) {
	if pattern == "" {
		c.message = ""
		return
	}
	m, err := c.editor.PerformSearch(pattern, dir)
	c.found(pattern, m, err)
}

func (c *Commander) found(pattern string, m search.Match, err error) {
	switch {
	case errors.Is(err, gote.ErrNoMatch):
		c.message = "Not found: " + pattern
	case err != nil:
		c.report(err)
	case m.Wrapped:
		c.message = "Search wrapped"
	default:
		c.message = ""
	}
}

func (c *Commander) repeatSearch(dir search.Direction) {
	if c.editor.Search.Pattern == "" {
		c.Perform(keymap.Find)
		c.searchDir = dir
		return
	}
	m, err := c.editor.RepeatSearch(dir)
	c.found(c.editor.Search.Pattern, m, err)
}

func (c *Commander) replaceAll(pattern, text string) {
	if pattern == "" {
		c.message = ""
		return
	}
	n, err := c.editor.ReplaceAll(pattern, text)
	switch {
	case errors.Is(err, gote.ErrNoMatch):
		c.message = "Not found: " + pattern
	case err != nil:
		c.report(err)
	default:
		c.editor.Search.SetPattern(pattern)
		c.message = fmt.Sprintf("Replaced %d occurrence(s)", n)
	}
}

// untitled is the file name used when none is typed at the save prompt.
const untitled = "untitled"

// save writes the buffer to its file, asking for a name if it has none.
func (c *Commander) save() {
	name := c.editor.GetFileName()
	if name == "" {
		c.setMode(gote.ModeSaveAs)
		c.fileText = ""
		return
	}
	c.write(name)
}

func (c *Commander) write(path string) {
	n, err := c.editor.WriteFile(path)
	if err != nil {
		log.Printf("save %s: %v", path, err)
		c.message = err.Error()
		return
	}
	c.message = fmt.Sprintf("Saved %s (%d bytes)", path, n)
}

// report turns an editor error into a status message.
func (c *Commander) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, gote.ErrNothingToUndo):
		c.message = "Nothing to undo"
	case errors.Is(err, gote.ErrNothingToRedo):
		c.message = "Nothing to redo"
	default:
		log.Printf("%v", err)
		c.message = err.Error()
	}
}

// typed returns the character an event inserts, if any.
func typed(event gote.Event) (rune, bool) {
	if event.Mod&gote.ModAlt != 0 {
		return 0, false
	}
	switch {
	case event.Key == gote.KeySpace:
		return ' ', true
	case event.Key == gote.KeyNone && event.Ch >= ' ' && event.Ch != 0x7f:
		return event.Ch, true
	}
	return 0, false
}

// edit applies a keystroke to the text of a prompt.
func edit(text *string, event gote.Event) {
	if event.Key == gote.KeyBackspace {
		*text = trimLast(*text)
		return
	}
	if ch, ok := typed(event); ok {
		*text += string(ch)
	}
}

func trimLast(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// State describes the screen for the renderer.
func (c *Commander) State(size gote.Size) render.State {
	e := c.editor
	e.SetSize(gote.Size{Rows: render.TextRows(size), Cols: size.Cols})
	e.Scroll()
	s := render.State{
		Size:     size,
		Doc:      e.Buffer,
		Cursor:   e.GetCursor(),
		Viewport: e.Viewport,
		TabWidth: e.TabWidth,
		Info:     c.info(),
		Position: render.FormatPosition(e.GetCursor(), e.Buffer.LineCount()),
		Message:  c.message,
	}
	if start, end, ok := e.Selection(); ok {
		s.Selection = render.Selection{Start: start, End: end}
	}
	switch c.mode {
	case gote.ModeSearch:
		prefix := "Search: "
		if c.searchDir == search.Backward {
			prefix = "Search backward: "
		}
		s.Message = prefix + c.searchText
		s.Prompt = true
	case gote.ModeReplace:
		if c.replacing {
			s.Message = fmt.Sprintf("Replace %q with: %s", c.searchText, c.replaceText)
		} else {
			s.Message = "Replace: " + c.searchText
		}
		s.Prompt = true
	case gote.ModeSaveAs:
		s.Message = "Save as: " + c.fileText
		s.Prompt = true
	}
	return s
}

func (c *Commander) info() string {
	e := c.editor
	name := e.GetFileName()
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	info := fmt.Sprintf(" %s - %d lines", name, e.Buffer.LineCount())
	if e.Dirty() {
		info += " [+]"
	}
	return info
}
