// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernels

// panelSize clamps a blocking.Blocking-derived panel size (B2 or B3) into
// [1, total]: a non-positive derived size or one larger than the
// operand itself (tiny matrix) both collapse to a single panel covering
// the whole dimension, so every family kernel's outer tile loop below
// runs exactly once in that case instead of needing its own guard.
func panelSize(derived, total int) int {
	if total <= 0 {
		return 1
	}
	if derived <= 0 || derived > total {
		return total
	}
	return derived
}
