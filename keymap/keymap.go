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
package keymap

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	gote "github.com/timburks/gote/types"
)

// An Action is a named editing command.
type Action string

const (
	ActionNone   Action = ""
	MoveUp       Action = "move-up"
	MoveDown     Action = "move-down"
	MoveLeft     Action = "move-left"
	MoveRight    Action = "move-right"
	LineStart    Action = "line-start"
	LineEnd      Action = "line-end"
	PageUp       Action = "page-up"
	PageDown     Action = "page-down"
	DocStart     Action = "doc-start"
	DocEnd       Action = "doc-end"
	SelectUp     Action = "select-up"
	SelectDown   Action = "select-down"
	SelectLeft   Action = "select-left"
	SelectRight  Action = "select-right"
	Newline      Action = "newline"
	Tab          Action = "tab"
	Backspace    Action = "backspace"
	Delete       Action = "delete"
	Undo         Action = "undo"
	Redo         Action = "redo"
	Find         Action = "find"
	FindNext     Action = "find-next"
	FindPrevious Action = "find-previous"
	Replace      Action = "replace"
	ReplaceAll   Action = "replace-all"
	Cut          Action = "cut"
	Copy         Action = "copy"
	CutLine      Action = "cut-line"
	CopyLine     Action = "copy-line"
	Paste        Action = "paste"
	Save         Action = "save"
	Quit         Action = "quit"
)

var actions = map[Action]bool{
	MoveUp: true, MoveDown: true, MoveLeft: true, MoveRight: true,
	LineStart: true, LineEnd: true, PageUp: true, PageDown: true,
	DocStart: true, DocEnd: true, Newline: true, Tab: true,
	SelectUp: true, SelectDown: true, SelectLeft: true, SelectRight: true,
	Backspace: true, Delete: true, Undo: true, Redo: true,
	Find: true, FindNext: true, FindPrevious: true, Replace: true, ReplaceAll: true,
	Cut: true, Copy: true, CutLine: true, CopyLine: true, Paste: true, Save: true, Quit: true,
}

// ParseAction checks an action name.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	if !actions[a] {
		return ActionNone, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// A Key is a keystroke as it appears in the table.
type Key struct {
	Key gote.Key
	Ch  rune
	Alt bool
}

// KeyOf returns the table key for an event.
func KeyOf(ev gote.Event) Key {
	k := Key{Key: ev.Key, Alt: ev.Mod&gote.ModAlt != 0}
	if ev.Key == gote.KeyNone {
		k.Ch = ev.Ch
	}
	return k
}

var keyNames = map[string]gote.Key{
	"up":        gote.KeyArrowUp,
	"down":      gote.KeyArrowDown,
	"left":      gote.KeyArrowLeft,
	"right":     gote.KeyArrowRight,
	"home":      gote.KeyHome,
	"end":       gote.KeyEnd,
	"pgup":      gote.KeyPgup,
	"pageup":    gote.KeyPgup,
	"pgdn":      gote.KeyPgdn,
	"pagedown":  gote.KeyPgdn,
	"insert":    gote.KeyInsert,
	"delete":    gote.KeyDelete,
	"backspace": gote.KeyBackspace,
	"tab":       gote.KeyTab,
	"enter":     gote.KeyEnter,
	"esc":       gote.KeyEsc,
	"escape":    gote.KeyEsc,
	"space":     gote.KeySpace,
	"f1":        gote.KeyF1,
	"f2":        gote.KeyF2,
	"f3":        gote.KeyF3,
	"f4":        gote.KeyF4,
	"f5":        gote.KeyF5,
	"f6":        gote.KeyF6,
	"f7":        gote.KeyF7,
	"f8":        gote.KeyF8,
	"f9":        gote.KeyF9,
	"f10":       gote.KeyF10,
	"f11":       gote.KeyF11,
	"f12":       gote.KeyF12,
}

var ctrlKeys = map[rune]gote.Key{
	'a': gote.KeyCtrlA, 'b': gote.KeyCtrlB, 'c': gote.KeyCtrlC, 'd': gote.KeyCtrlD,
	'e': gote.KeyCtrlE, 'f': gote.KeyCtrlF, 'g': gote.KeyCtrlG, 'k': gote.KeyCtrlK,
	'l': gote.KeyCtrlL, 'n': gote.KeyCtrlN, 'o': gote.KeyCtrlO, 'p': gote.KeyCtrlP,
	'q': gote.KeyCtrlQ, 'r': gote.KeyCtrlR, 's': gote.KeyCtrlS, 't': gote.KeyCtrlT,
	'u': gote.KeyCtrlU, 'v': gote.KeyCtrlV, 'w': gote.KeyCtrlW, 'x': gote.KeyCtrlX,
	'y': gote.KeyCtrlY, 'z': gote.KeyCtrlZ,
}

// ParseKey reads key names like "ctrl+s", "alt+x", "pgup" or "q".
func ParseKey(s string) (Key, error) {
	name := s
	var mods []string
	// the last character is never a separator, so "alt++" is alt and "+"
	if i := strings.LastIndex(s[:max(len(s)-1, 0)], "+"); i >= 0 {
		mods = strings.Split(s[:i], "+")
		name = s[i+1:]
	}
	var k Key
	ctrl := false
	for _, mod := range mods {
		switch strings.ToLower(mod) {
		case "ctrl", "control", "c":
			ctrl = true
		case "alt", "meta", "m":
			k.Alt = true
		default:
			return Key{}, fmt.Errorf("key %q: unknown modifier %q", s, mod)
		}
	}
	if ctrl {
		if utf8.RuneCountInString(name) != 1 {
			return Key{}, fmt.Errorf("key %q: no such control key", s)
		}
		r, _ := utf8.DecodeRuneInString(strings.ToLower(name))
		key, ok := ctrlKeys[r]
		if !ok {
			return Key{}, fmt.Errorf("key %q: no such control key", s)
		}
		k.Key = key
		return k, nil
	}
	if key, ok := keyNames[strings.ToLower(name)]; ok {
		k.Key = key
		return k, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		k.Ch, _ = utf8.DecodeRuneInString(name)
		return k, nil
	}
	return Key{}, fmt.Errorf("key %q: unknown key", s)
}

// Table maps keys to actions.
type Table map[Key]Action

// Lookup finds the action bound to an event.
func (t Table) Lookup(ev gote.Event) (Action, bool) {
	a, ok := t[KeyOf(ev)]
	return a, ok && a != ActionNone
}

// Bind adds a binding given by name.
func (t Table) Bind(key, action string) error {
	k, err := ParseKey(key)
	if err != nil {
		return err
	}
	a, err := ParseAction(action)
	if err != nil {
		return err
	}
	t[k] = a
	return nil
}

// Unbind removes a binding given by name.
func (t Table) Unbind(key string) error {
	k, err := ParseKey(key)
	if err != nil {
		return err
	}
	delete(t, k)
	return nil
}

var defaults = [][2]string{
	{"up", "move-up"},
	{"down", "move-down"},
	{"left", "move-left"},
	{"right", "move-right"},
	{"home", "line-start"},
	{"ctrl+a", "line-start"},
	{"end", "line-end"},
	{"ctrl+e", "line-end"},
	{"pgup", "page-up"},
	{"pgdn", "page-down"},
	{"alt+<", "doc-start"},
	{"alt+>", "doc-end"},
	{"alt+up", "select-up"},
	{"alt+down", "select-down"},
	{"alt+left", "select-left"},
	{"alt+right", "select-right"},
	{"enter", "newline"},
	{"tab", "tab"},
	{"backspace", "backspace"},
	{"delete", "delete"},
	{"ctrl+z", "undo"},
	{"ctrl+y", "redo"},
	{"ctrl+f", "find"},
	{"ctrl+g", "find-next"},
	{"f3", "find-next"},
	{"ctrl+b", "find-previous"},
	{"ctrl+r", "replace"},
	{"ctrl+t", "replace-all"},
	{"ctrl+x", "cut"},
	{"ctrl+c", "copy"},
	{"alt+x", "cut-line"},
	{"alt+c", "copy-line"},
	{"ctrl+v", "paste"},
	{"ctrl+s", "save"},
	{"ctrl+q", "quit"},
}

// Default returns the built-in bindings.
func Default() Table {
	t := make(Table, len(defaults))
	for _, d := range defaults {
		if err := t.Bind(d[0], d[1]); err != nil {
			panic(err)
		}
	}
	return t
}

// Clone returns a copy of a table.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for k, a := range t {
		c[k] = a
	}
	return c
}

// Config is everything read from the configuration file.
type Config struct {
	Table     Table
	TabWidth  int
	UndoPause time.Duration
	UndoLimit int
}

func DefaultConfig() Config {
	return Config{
		Table:     Default(),
		TabWidth:  8,
		UndoPause: time.Second,
	}
}
