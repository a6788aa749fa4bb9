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

// Package search finds patterns in a document and builds the edit
// operations that replace them. Searches wrap around the document once
// and report whether the wrap was needed. Replacement never edits the
// document directly: it returns operations for the editor to perform and
// record, so a replacement is undone like any other edit.
package search
