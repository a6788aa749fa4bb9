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
	"fmt"

	gote "github.com/timburks/gote/types"
)

// Sequence performs a list of operations in order.
// If one fails, the ones already performed are reverted.
type Sequence struct {
	Operations []gote.Operation
}

func (op *Sequence) Perform(b gote.Buffer) (gote.Operation, error) {
	inverses := make([]gote.Operation, 0, len(op.Operations))
	for i, o := range op.Operations {
		inverse, err := o.Perform(b)
		if err != nil {
			if rollbackErr := Revert(b, inverses); rollbackErr != nil {
				return nil, fmt.Errorf("operation %d: %w (rollback: %v)", i, err, rollbackErr)
			}
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		inverses = append(inverses, inverse)
	}
	reversed := make([]gote.Operation, len(inverses))
	for i, inverse := range inverses {
		reversed[len(inverses)-1-i] = inverse
	}
	return &Sequence{Operations: reversed}, nil
}

// Revert performs inverses from last to first.
func Revert(b gote.Buffer, inverses []gote.Operation) error {
	for i := len(inverses) - 1; i >= 0; i-- {
		if _, err := inverses[i].Perform(b); err != nil {
			return err
		}
	}
	return nil
}
