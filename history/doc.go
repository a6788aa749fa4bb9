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

// Package history records the edits applied to a buffer so they can be
// undone and redone. Each entry holds the operations that were performed
// and the inverses they returned, along with the cursor before and after.
// Runs of typing are coalesced into one entry; any other action starts a
// new one. Recording after an undo discards the entries that could have
// been redone.
package history
