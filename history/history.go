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
package history

import (
	"fmt"
	"time"

	"github.com/timburks/gote/operations"
	gote "github.com/timburks/gote/types"
)

// DefaultPause is the longest gap between keystrokes that still coalesces.
const DefaultPause = time.Second

// Kind classifies an entry for coalescing.
type Kind int

const (
	KindOther Kind = iota
	KindInsert
	KindDelete
	KindSplit
	KindJoin
	KindReplace
	KindCut
	KindPaste
)

func (k Kind) coalescible() bool {
	return k == KindInsert || k == KindDelete
}

// An Entry is one undo step.
type Entry struct {
	Kind       Kind
	Operations []gote.Operation // performed, in order
	Inverses   []gote.Operation // Inverses[i] undoes Operations[i]
	Before     gote.Point       // cursor before the first operation
	After      gote.Point       // cursor after the last operation

	open bool      // more typing may still be added
	last time.Time // time of the last coalesced edit
}

// History is a list of entries with a redo pointer.
// entries[:next] can be undone, entries[next:] can be redone.
type History struct {
	Pause time.Duration // <= 0 disables the pause check
	Limit int           // maximum number of entries kept, 0 for no limit

	entries []*Entry
	next    int
}

func New() *History {
	return &History{Pause: DefaultPause}
}

// Record appends a completed entry, discarding any redoable entries.
func (h *History) Record(e *Entry) {
	h.Close()
	h.entries = append(h.entries[:h.next], e)
	h.next = len(h.entries)
	if h.Limit > 0 && len(h.entries) > h.Limit {
		drop := len(h.entries) - h.Limit
		h.entries = append([]*Entry(nil), h.entries[drop:]...)
		h.next -= drop
	}
}

// Add records one performed operation. Typing that continues where the
// previous edit of the same kind left the cursor, soon enough after it,
// joins the open entry instead of starting a new one.
func (h *History) Add(kind Kind, op, inverse gote.Operation, before, after gote.Point, at time.Time) {
	if top := h.top(); top != nil && h.continues(top, kind, before, at) {
		top.Operations = append(top.Operations, op)
		top.Inverses = append(top.Inverses, inverse)
		top.After = after
		top.last = at
		return
	}
	h.Record(&Entry{
		Kind:       kind,
		Operations: []gote.Operation{op},
		Inverses:   []gote.Operation{inverse},
		Before:     before,
		After:      after,
		open:       kind.coalescible(),
		last:       at,
	})
}

func (h *History) continues(top *Entry, kind Kind, before gote.Point, at time.Time) bool {
	if !top.open || top.Kind != kind || top.After != before {
		return false
	}
	if h.Pause <= 0 {
		return true
	}
	gap := at.Sub(top.last)
	return gap >= 0 && gap <= h.Pause
}

// Close ends the open entry so the next edit starts a new one.
func (h *History) Close() {
	if top := h.top(); top != nil {
		top.open = false
	}
}

func (h *History) top() *Entry {
	if h.next == 0 || h.next != len(h.entries) {
		return nil
	}
	return h.entries[h.next-1]
}

func (h *History) CanUndo() bool {
	return h.next > 0
}

func (h *History) CanRedo() bool {
	return h.next < len(h.entries)
}

// Len returns the number of entries that can be undone.
func (h *History) Len() int {
	return h.next
}

func (h *History) Clear() {
	h.entries = nil
	h.next = 0
}

// Undo reverts the most recent entry and returns the cursor from before it.
// The cursor given is where a later Redo puts it back.
func (h *History) Undo(b gote.Buffer, cursor gote.Point) (gote.Point, error) {
	if !h.CanUndo() {
		return gote.Point{}, gote.ErrNothingToUndo
	}
	h.Close()
	e := h.entries[h.next-1]
	undo := &operations.Sequence{Operations: reversed(e.Inverses)}
	redo, err := undo.Perform(b)
	if err != nil {
		return gote.Point{}, fmt.Errorf("undo: %w", err)
	}
	e.Operations = redo.(*operations.Sequence).Operations
	e.After = cursor
	h.next--
	return e.Before, nil
}

// Redo reapplies the most recently undone entry and returns the cursor from after it.
func (h *History) Redo(b gote.Buffer) (gote.Point, error) {
	if !h.CanRedo() {
		return gote.Point{}, gote.ErrNothingToRedo
	}
	e := h.entries[h.next]
	redo := &operations.Sequence{Operations: e.Operations}
	undo, err := redo.Perform(b)
	if err != nil {
		return gote.Point{}, fmt.Errorf("redo: %w", err)
	}
	e.Inverses = reversed(undo.(*operations.Sequence).Operations)
	h.next++
	return e.After, nil
}

func reversed(ops []gote.Operation) []gote.Operation {
	r := make([]gote.Operation, len(ops))
	for i, op := range ops {
		r[len(ops)-1-i] = op
	}
	return r
}
