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
package screen

import (
	"time"

	"github.com/nsf/termbox-go"
	gote "github.com/timburks/gote/types"
)

// The Screen is the terminal: a grid of cells to draw on and a source of
// key events.
type Screen struct{}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputAlt)
	termbox.SetOutputMode(termbox.OutputNormal)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Size() gote.Size {
	cols, rows := termbox.Size()
	return gote.Size{Rows: rows, Cols: cols}
}

// SetCell draws one cell. Rune 0 marks the second half of a wide
// character, which termbox draws along with the first half.
func (s *Screen) SetCell(col, row int, ch rune, reverse bool) {
	if ch == 0 {
		return
	}
	fg, bg := termbox.ColorDefault, termbox.ColorDefault
	if reverse {
		fg |= termbox.AttrReverse
	}
	termbox.SetCell(col, row, ch, fg, bg)
}

func (s *Screen) SetCursor(p gote.Point) {
	if p.Row < 0 || p.Col < 0 {
		termbox.HideCursor()
		return
	}
	termbox.SetCursor(p.Col, p.Row)
}

func (s *Screen) Flush() error {
	return termbox.Flush()
}

// NextEvent blocks until the terminal has input.
func (s *Screen) NextEvent() gote.Event {
	event := termbox.PollEvent()
	now := time.Now()
	switch event.Type {
	case termbox.EventKey:
		ev := gote.Event{Type: gote.EventKey, Ch: event.Ch, Time: now}
		if event.Mod&termbox.ModAlt != 0 {
			ev.Mod = gote.ModAlt
		}
		if event.Ch == 0 {
			ev.Key = key(event.Key)
		}
		return ev
	case termbox.EventResize:
		return gote.Event{
			Type: gote.EventResize,
			Size: gote.Size{Rows: event.Height, Cols: event.Width},
			Time: now,
		}
	case termbox.EventError:
		return gote.Event{Type: gote.EventError, Err: event.Err, Time: now}
	default:
		return gote.Event{Type: gote.EventNone, Time: now}
	}
}

// key translates termbox keys. Ctrl-H, Ctrl-I and Ctrl-M arrive as
// Backspace, Tab and Enter.
func key(k termbox.Key) gote.Key {
	switch k {
	case termbox.KeyArrowDown:
		return gote.KeyArrowDown
	case termbox.KeyArrowLeft:
		return gote.KeyArrowLeft
	case termbox.KeyArrowRight:
		return gote.KeyArrowRight
	case termbox.KeyArrowUp:
		return gote.KeyArrowUp
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return gote.KeyBackspace
	case termbox.KeyDelete:
		return gote.KeyDelete
	case termbox.KeyInsert:
		return gote.KeyInsert
	case termbox.KeyCtrlA:
		return gote.KeyCtrlA
	case termbox.KeyCtrlB:
		return gote.KeyCtrlB
	case termbox.KeyCtrlC:
		return gote.KeyCtrlC
	case termbox.KeyCtrlD:
		return gote.KeyCtrlD
	case termbox.KeyCtrlE:
		return gote.KeyCtrlE
	case termbox.KeyCtrlF:
		return gote.KeyCtrlF
	case termbox.KeyCtrlG:
		return gote.KeyCtrlG
	case termbox.KeyCtrlK:
		return gote.KeyCtrlK
	case termbox.KeyCtrlL:
		return gote.KeyCtrlL
	case termbox.KeyCtrlN:
		return gote.KeyCtrlN
	case termbox.KeyCtrlO:
		return gote.KeyCtrlO
	case termbox.KeyCtrlP:
		return gote.KeyCtrlP
	case termbox.KeyCtrlQ:
		return gote.KeyCtrlQ
	case termbox.KeyCtrlR:
		return gote.KeyCtrlR
	case termbox.KeyCtrlS:
		return gote.KeyCtrlS
	case termbox.KeyCtrlT:
		return gote.KeyCtrlT
	case termbox.KeyCtrlU:
		return gote.KeyCtrlU
	case termbox.KeyCtrlV:
		return gote.KeyCtrlV
	case termbox.KeyCtrlW:
		return gote.KeyCtrlW
	case termbox.KeyCtrlX:
		return gote.KeyCtrlX
	case termbox.KeyCtrlY:
		return gote.KeyCtrlY
	case termbox.KeyCtrlZ:
		return gote.KeyCtrlZ
	case termbox.KeyEnd:
		return gote.KeyEnd
	case termbox.KeyEnter:
		return gote.KeyEnter
	case termbox.KeyEsc:
		return gote.KeyEsc
	case termbox.KeyHome:
		return gote.KeyHome
	case termbox.KeyPgdn:
		return gote.KeyPgdn
	case termbox.KeyPgup:
		return gote.KeyPgup
	case termbox.KeySpace:
		return gote.KeySpace
	case termbox.KeyTab:
		return gote.KeyTab
	case termbox.KeyF1:
		return gote.KeyF1
	case termbox.KeyF2:
		return gote.KeyF2
	case termbox.KeyF3:
		return gote.KeyF3
	case termbox.KeyF4:
		return gote.KeyF4
	case termbox.KeyF5:
		return gote.KeyF5
	case termbox.KeyF6:
		return gote.KeyF6
	case termbox.KeyF7:
		return gote.KeyF7
	case termbox.KeyF8:
		return gote.KeyF8
	case termbox.KeyF9:
		return gote.KeyF9
	case termbox.KeyF10:
		return gote.KeyF10
	case termbox.KeyF11:
		return gote.KeyF11
	case termbox.KeyF12:
		return gote.KeyF12
	default:
		return gote.KeyUnsupported
	}
}
