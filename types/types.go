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
package types

import "time"

// Action loop states
type Mode int

const (
	ModeEdit Mode = iota
	ModeSearch
	ModeReplace
	ModeConfirmExit
	ModeSaveAs
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeSearch:
		return "search"
	case ModeReplace:
		return "replace"
	case ModeConfirmExit:
		return "confirm-exit"
	case ModeSaveAs:
		return "save-as"
	case ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// A Point is a position in a document or on a screen.
// Cols are counted in characters, not bytes.
type Point struct {
	Row int
	Col int
}

// Before reports whether p comes strictly before q in document order.
func (p Point) Before(q Point) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

type Size struct {
	Rows int
	Cols int
}

// Event types
const (
	EventNone   = 0
	EventKey    = 1
	EventResize = 2
	EventError  = 3
)

// An Event is one input event from the keystroke source.
type Event struct {
	Type int
	Key  Key
	Ch   rune
	Mod  Modifier
	Size Size      // new screen size for EventResize
	Time time.Time // when the event was read
	Err  error
}

type Modifier int

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1
)

// Key identifies a non-character key. Character keys have Key == KeyNone and Ch set.
type Key int

const (
	KeyNone Key = iota
	KeyUnsupported
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPgup
	KeyPgdn
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEsc
	KeySpace
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Buffer is the editable document. Its four edit primitives are the only
// mutators; each validates its arguments before changing anything.
type Buffer interface {
	LineCount() int
	Line(i int) string
	LineLength(i int) int
	Valid(p Point) bool

	InsertText(at Point, text string) (end Point, err error)
	DeleteRange(start, end Point) (deleted string, err error)
	SplitLine(at Point) error
	JoinLines(row int) (col int, err error)
}

// Operation is a reversible edit.
type Operation interface {
	Perform(b Buffer) (Operation, error) // performs the operation and returns its inverse
}

// Display is the grid-drawing primitive.
type Display interface {
	Size() Size
	SetCell(col, row int, ch rune, reverse bool)
	SetCursor(p Point)
	Flush() error
}

// EventSource yields one input event at a time, blocking between events.
type EventSource interface {
	NextEvent() Event
}

// FileStore loads and stores whole files.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}
