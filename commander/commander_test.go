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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/gote/editor"
	"github.com/timburks/gote/keymap"
	"github.com/timburks/gote/render"
	gote "github.com/timburks/gote/types"
)

func setup(t *testing.T, text string) (*Commander, *editor.Editor) {
	t.Helper()
	e := editor.NewEditor(nil)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return t0 })
	e.LoadBytes([]byte(text))
	e.SetFileName(filepath.Join(t.TempDir(), "doc.txt"))
	return NewCommander(e, keymap.Default()), e
}

func key(k gote.Key) gote.Event {
	return gote.Event{Type: gote.EventKey, Key: k}
}

func ch(c rune) gote.Event {
	return gote.Event{Type: gote.EventKey, Ch: c}
}

func typeString(c *Commander, s string) {
	for _, r := range s {
		if r == ' ' {
			c.ProcessEvent(key(gote.KeySpace))
		} else {
			c.ProcessEvent(ch(r))
		}
	}
}

func TestTyping(t *testing.T) {
	c, e := setup(t, "")
	typeString(c, "hello world")
	c.ProcessEvent(key(gote.KeyEnter))
	typeString(c, "again")
	c.ProcessEvent(key(gote.KeyBackspace))
	assert.Equal(t, "hello world\nagai", e.Buffer.Text())
	assert.Equal(t, gote.ModeEdit, c.GetMode())

	// alt keys that are not bound insert nothing
	c.ProcessEvent(gote.Event{Type: gote.EventKey, Ch: 'w', Mod: gote.ModAlt})
	assert.Equal(t, "hello world\nagai", e.Buffer.Text())
}

func TestEveryMutationIsRecorded(t *testing.T) {
	c, e := setup(t, "one\ntwo")
	c.ProcessEvent(ch('x'))
	assert.Equal(t, 1, e.History.Len())
	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, 2, e.History.Len())
	c.ProcessEvent(key(gote.KeyCtrlX))
	assert.Equal(t, 3, e.History.Len())
	c.ProcessEvent(key(gote.KeyCtrlV))
	assert.Equal(t, 4, e.History.Len())
	c.ProcessEvent(key(gote.KeyTab))
	assert.Equal(t, 5, e.History.Len())

	for e.History.CanUndo() {
		c.ProcessEvent(key(gote.KeyCtrlZ))
	}
	assert.Equal(t, "one\ntwo", e.Buffer.Text())
	c.ProcessEvent(key(gote.KeyCtrlZ))
	assert.Equal(t, "Nothing to undo", c.GetMessage())
}

func TestRedoMessage(t *testing.T) {
	c, _ := setup(t, "")
	c.ProcessEvent(key(gote.KeyCtrlY))
	assert.Equal(t, "Nothing to redo", c.GetMessage())
}

func TestMovement(t *testing.T) {
	c, e := setup(t, "abc\ndef")
	c.ProcessEvent(key(gote.KeyArrowDown))
	c.ProcessEvent(key(gote.KeyEnd))
	assert.Equal(t, gote.Point{Row: 1, Col: 3}, e.GetCursor())
	c.ProcessEvent(key(gote.KeyCtrlA))
	assert.Equal(t, gote.Point{Row: 1, Col: 0}, e.GetCursor())
	c.ProcessEvent(key(gote.KeyArrowLeft))
	assert.Equal(t, gote.Point{Row: 0, Col: 3}, e.GetCursor())
	c.ProcessEvent(gote.Event{Type: gote.EventKey, Ch: '>', Mod: gote.ModAlt})
	assert.Equal(t, gote.Point{Row: 1, Col: 3}, e.GetCursor())
	c.ProcessEvent(gote.Event{Type: gote.EventKey, Ch: '<', Mod: gote.ModAlt})
	assert.Equal(t, gote.Point{}, e.GetCursor())
}

func TestSearchPrompt(t *testing.T) {
	c, e := setup(t, "alpha\nbeta\nalpha")
	c.ProcessEvent(key(gote.KeyCtrlF))
	assert.Equal(t, gote.ModeSearch, c.GetMode())
	typeString(c, "alphx")
	c.ProcessEvent(key(gote.KeyBackspace))
	typeString(c, "a")
	assert.Equal(t, "alpha", c.GetSearchText())

	s := c.State(gote.Size{Rows: 10, Cols: 40})
	assert.Equal(t, "Search: alpha", s.Message)
	assert.True(t, s.Prompt)

	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, gote.Point{Row: 0, Col: 0}, e.GetCursor())

	c.ProcessEvent(key(gote.KeyCtrlG))
	assert.Equal(t, gote.Point{Row: 2, Col: 0}, e.GetCursor())
	assert.Equal(t, "", c.GetMessage())

	c.ProcessEvent(key(gote.KeyF3))
	assert.Equal(t, gote.Point{Row: 0, Col: 0}, e.GetCursor())
	assert.Equal(t, "Search wrapped", c.GetMessage())

	c.ProcessEvent(key(gote.KeyCtrlB))
	assert.Equal(t, gote.Point{Row: 2, Col: 0}, e.GetCursor())
}

func TestSearchNotFound(t *testing.T) {
	c, e := setup(t, "alpha")
	c.ProcessEvent(key(gote.KeyCtrlF))
	typeString(c, "zeta")
	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, "Not found: zeta", c.GetMessage())
	assert.Equal(t, gote.Point{}, e.GetCursor())
}

func TestEscapeCancelsPromptsWithoutSideEffects(t *testing.T) {
	c, e := setup(t, "alpha beta")
	e.SetCursor(gote.Point{Col: 3})

	c.ProcessEvent(key(gote.KeyCtrlF))
	typeString(c, "beta")
	c.ProcessEvent(key(gote.KeyEsc))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, gote.Point{Col: 3}, e.GetCursor())
	assert.Equal(t, "", e.Search.Pattern)

	c.ProcessEvent(key(gote.KeyCtrlR))
	typeString(c, "beta")
	c.ProcessEvent(key(gote.KeyEnter))
	typeString(c, "gamma")
	c.ProcessEvent(key(gote.KeyEsc))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "alpha beta", e.Buffer.Text())
	assert.False(t, e.History.CanUndo())
	assert.False(t, e.Dirty())
}

func TestReplacePrompt(t *testing.T) {
	c, e := setup(t, "aaa")
	c.ProcessEvent(key(gote.KeyCtrlR))
	assert.Equal(t, gote.ModeReplace, c.GetMode())
	typeString(c, "a")
	assert.Equal(t, "Replace: a", c.State(gote.Size{Rows: 5, Cols: 40}).Message)
	c.ProcessEvent(key(gote.KeyEnter))
	typeString(c, "bb")
	assert.Equal(t, `Replace "a" with: bb`, c.State(gote.Size{Rows: 5, Cols: 40}).Message)
	c.ProcessEvent(key(gote.KeyEnter))

	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "bbbbbb", e.Buffer.Text())
	assert.Equal(t, "Replaced 3 occurrence(s)", c.GetMessage())

	c.ProcessEvent(key(gote.KeyCtrlZ))
	assert.Equal(t, "aaa", e.Buffer.Text())
}

func TestReplaceAllUsesSearchPattern(t *testing.T) {
	c, e := setup(t, "one two one")
	c.ProcessEvent(key(gote.KeyCtrlF))
	typeString(c, "one")
	c.ProcessEvent(key(gote.KeyEnter))

	c.ProcessEvent(key(gote.KeyCtrlT))
	assert.Equal(t, gote.ModeReplace, c.GetMode())
	typeString(c, "1")
	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, "1 two 1", e.Buffer.Text())
	assert.Equal(t, "Replaced 2 occurrence(s)", c.GetMessage())
}

func TestFindNextAfterEditMovesOn(t *testing.T) {
	c, e := setup(t, "xx ab ab ab")
	c.ProcessEvent(key(gote.KeyCtrlF))
	typeString(c, "ab")
	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, gote.Point{Col: 3}, e.GetCursor())

	typeString(c, "Z")
	c.ProcessEvent(key(gote.KeyCtrlZ))
	assert.Equal(t, "xx ab ab ab", e.Buffer.Text())

	c.ProcessEvent(key(gote.KeyCtrlG))
	assert.Equal(t, gote.Point{Col: 6}, e.GetCursor())
	c.ProcessEvent(key(gote.KeyCtrlG))
	assert.Equal(t, gote.Point{Col: 9}, e.GetCursor())
	assert.Equal(t, "", c.GetMessage())
}

func alt(k gote.Key) gote.Event {
	return gote.Event{Type: gote.EventKey, Key: k, Mod: gote.ModAlt}
}

func TestSelectionKeys(t *testing.T) {
	c, e := setup(t, "hello world")
	for i := 0; i < 5; i++ {
		c.ProcessEvent(alt(gote.KeyArrowRight))
	}
	s := c.State(gote.Size{Rows: 5, Cols: 40})
	assert.Equal(t, gote.Point{}, s.Selection.Start)
	assert.Equal(t, gote.Point{Col: 5}, s.Selection.End)

	c.ProcessEvent(key(gote.KeyCtrlC))
	assert.Equal(t, "hello", e.GetPasteText())

	typeString(c, "J")
	assert.Equal(t, "J world", e.Buffer.Text())
	assert.Equal(t, 1, e.History.Len())
	assert.Equal(t, render.Selection{}, c.State(gote.Size{Rows: 5, Cols: 40}).Selection)

	c.ProcessEvent(key(gote.KeyEnd))
	c.ProcessEvent(alt(gote.KeyArrowLeft))
	c.ProcessEvent(alt(gote.KeyArrowLeft))
	c.ProcessEvent(key(gote.KeyCtrlX))
	assert.Equal(t, "J wor", e.Buffer.Text())
	assert.Equal(t, "ld", e.GetPasteText())
	c.ProcessEvent(key(gote.KeyCtrlV))
	assert.Equal(t, "J world", e.Buffer.Text())

	c.ProcessEvent(key(gote.KeyCtrlZ))
	c.ProcessEvent(key(gote.KeyCtrlZ))
	c.ProcessEvent(key(gote.KeyCtrlZ))
	assert.Equal(t, "hello world", e.Buffer.Text())
}

func TestKeystrokeTimesGroupTyping(t *testing.T) {
	c, e := setup(t, "")
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(r rune, d time.Duration) gote.Event {
		return gote.Event{Type: gote.EventKey, Ch: r, Time: t0.Add(d)}
	}
	c.ProcessEvent(at('a', 0))
	c.ProcessEvent(at('b', 100*time.Millisecond))
	assert.Equal(t, 1, e.History.Len())
	c.ProcessEvent(at('c', 3*time.Second))
	assert.Equal(t, 2, e.History.Len())
	assert.Equal(t, "abc", e.Buffer.Text())
}

func TestQuitWithoutChanges(t *testing.T) {
	c, _ := setup(t, "text")
	assert.True(t, c.IsRunning())
	c.ProcessEvent(key(gote.KeyCtrlQ))
	assert.Equal(t, gote.ModeQuit, c.GetMode())
	assert.False(t, c.IsRunning())
}

func TestConfirmExit(t *testing.T) {
	c, _ := setup(t, "")
	typeString(c, "x")
	c.ProcessEvent(key(gote.KeyCtrlQ))
	assert.Equal(t, gote.ModeConfirmExit, c.GetMode())
	assert.Equal(t, "Unsaved changes. Quit anyway? (y/n)", c.GetMessage())

	// other keys are ignored
	c.ProcessEvent(ch('q'))
	c.ProcessEvent(key(gote.KeyCtrlS))
	assert.Equal(t, gote.ModeConfirmExit, c.GetMode())

	c.ProcessEvent(ch('n'))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.True(t, c.IsRunning())

	c.ProcessEvent(key(gote.KeyCtrlQ))
	c.ProcessEvent(key(gote.KeyEsc))
	assert.Equal(t, gote.ModeEdit, c.GetMode())

	c.ProcessEvent(key(gote.KeyCtrlQ))
	c.ProcessEvent(ch('y'))
	assert.False(t, c.IsRunning())
}

func TestSave(t *testing.T) {
	c, e := setup(t, "")
	typeString(c, "saved")
	c.ProcessEvent(key(gote.KeyCtrlS))
	assert.Equal(t, "Saved "+e.GetFileName()+" (5 bytes)", c.GetMessage())
	assert.False(t, e.Dirty())
	got, err := os.ReadFile(e.GetFileName())
	require.NoError(t, err)
	assert.Equal(t, "saved", string(got))

	// quitting after a save needs no confirmation
	c.ProcessEvent(key(gote.KeyCtrlQ))
	assert.False(t, c.IsRunning())
}

func TestSaveAsPrompt(t *testing.T) {
	c, e := setup(t, "")
	e.SetFileName("")
	typeString(c, "h")
	c.ProcessEvent(key(gote.KeyCtrlS))
	assert.Equal(t, gote.ModeSaveAs, c.GetMode())
	assert.True(t, e.Dirty())

	path := filepath.Join(t.TempDir(), "named.txt")
	typeString(c, path+"x")
	c.ProcessEvent(key(gote.KeyBackspace))
	s := c.State(gote.Size{Rows: 5, Cols: 200})
	assert.Equal(t, "Save as: "+path, s.Message)
	assert.True(t, s.Prompt)

	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, path, e.GetFileName())
	assert.False(t, e.Dirty())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "h", string(got))

	// named now, so saving again writes directly
	typeString(c, "i")
	c.ProcessEvent(key(gote.KeyCtrlS))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "Saved "+path+" (2 bytes)", c.GetMessage())
}

func TestSaveAsEscapeCancels(t *testing.T) {
	c, e := setup(t, "")
	e.SetFileName("")
	typeString(c, "h")
	c.ProcessEvent(key(gote.KeyCtrlS))
	typeString(c, "out.txt")
	c.ProcessEvent(key(gote.KeyEsc))
	assert.Equal(t, gote.ModeEdit, c.GetMode())
	assert.Equal(t, "", e.GetFileName())
	assert.True(t, e.Dirty())
	assert.Equal(t, "", c.GetMessage())
}

func TestSaveAsWithoutNameUsesUntitled(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	c, e := setup(t, "")
	e.SetFileName("")
	typeString(c, "h")
	c.ProcessEvent(key(gote.KeyCtrlS))
	c.ProcessEvent(key(gote.KeyEnter))
	assert.Equal(t, "untitled", e.GetFileName())
	got, err := os.ReadFile(filepath.Join(dir, "untitled"))
	require.NoError(t, err)
	assert.Equal(t, "h", string(got))
}

func TestSaveFailure(t *testing.T) {
	c, e := setup(t, "")
	e.SetFileName(filepath.Join(t.TempDir(), "missing", "doc.txt"))
	typeString(c, "x")
	c.ProcessEvent(key(gote.KeyCtrlS))
	assert.Contains(t, c.GetMessage(), "doc.txt")
	assert.True(t, e.Dirty())
	assert.Equal(t, "x", e.Buffer.Text())
}

func TestCustomTable(t *testing.T) {
	table := keymap.Default()
	require.NoError(t, table.Bind("ctrl+w", "quit"))
	c, _ := setup(t, "")
	c.table = table
	c.ProcessEvent(key(gote.KeyCtrlW))
	assert.False(t, c.IsRunning())
}

func TestResizeAndState(t *testing.T) {
	c, e := setup(t, "one\ntwo\nthree\nfour\nfive")
	c.ProcessEvent(gote.Event{Type: gote.EventResize, Size: gote.Size{Rows: 4, Cols: 20}})
	assert.Equal(t, 2, e.Viewport.Height)
	assert.Equal(t, 20, e.Viewport.Width)

	e.SetCursor(gote.Point{Row: 4})
	s := c.State(gote.Size{Rows: 4, Cols: 20})
	assert.Equal(t, 3, s.Viewport.Top)
	assert.Equal(t, " doc.txt - 5 lines", s.Info)
	assert.Equal(t, " 5:1 5/5 ", s.Position)
	assert.False(t, s.Prompt)

	typeString(c, "x")
	assert.Equal(t, " doc.txt - 5 lines [+]", c.State(gote.Size{Rows: 4, Cols: 20}).Info)
}

func TestModeSwitchEndsTyping(t *testing.T) {
	c, e := setup(t, "")
	typeString(c, "ab")
	c.ProcessEvent(key(gote.KeyCtrlF))
	c.ProcessEvent(key(gote.KeyEsc))
	typeString(c, "cd")
	assert.Equal(t, "abcd", e.Buffer.Text())
	assert.Equal(t, 2, e.History.Len())
}
