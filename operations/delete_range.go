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

// DeleteRange removes the text in [Start, End).
type DeleteRange struct {
	Start gote.Point
	End   gote.Point
}

func (op *DeleteRange) Perform(b gote.Buffer) (gote.Operation, error) {
	deleted, err := b.DeleteRange(op.Start, op.End)
	if err != nil {
		return nil, err
	}
	return &InsertText{At: op.Start, Text: deleted}, nil
}
