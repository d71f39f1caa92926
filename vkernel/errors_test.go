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

package vkernel

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorIsSentinel(t *testing.T) {
	err := newError("Multiply", Singular, 1, "zero pivot")
	if !errors.Is(err, ErrSingular) {
		t.Error("errors.Is(err, ErrSingular) = false, want true")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is(err, ErrInvalidArgument) = true, want false")
	}
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := newError("Transpose", LayoutError, 0, "rows not contiguous")
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
	for _, want := range []string{"Transpose", "layout-error", "rows not contiguous"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want substring %q", msg, want)
		}
	}
}
