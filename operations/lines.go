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
package operations

import (
	gote "github.com/timburks/gote/types"
)

// SplitLine breaks a line in two at a position.
type SplitLine struct {
	At gote.Point
}

func (op *SplitLine) Perform(b gote.Buffer) (gote.Operation, error) {
	if err := b.SplitLine(op.At); err != nil {
		return nil, err
	}
	return &JoinLines{Row: op.At.Row}, nil
}

// JoinLines joins a line with the one below it.
type JoinLines struct {
	Row int
}

func (op *JoinLines) Perform(b gote.Buffer) (gote.Operation, error) {
	col, err := b.JoinLines(op.Row)
	if err != nil {
		return nil, err
	}
	return &SplitLine{At: gote.Point{Row: op.Row, Col: col}}, nil
}
