// Copyright 2026 Blink Labs Software
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

package expr

// Equal reports whether a and b are structurally equal. Binder names and
// source positions are ignored. Macro nodes are equal when their definitions
// have the same MacroKind, the definitions compare equal, and their
// arguments are pairwise equal.
func Equal(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.hash != b.hash || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBVar, KindSort:
		return a.value == b.value
	case KindConst:
		return a.name == b.name
	case KindApp:
		return Equal(a.fn, b.fn) && Equal(a.arg, b.arg)
	case KindLambda, KindPi:
		return Equal(a.binderType, b.binderType) && Equal(a.body, b.body)
	case KindMData:
		return a.data.Equal(b.data) && Equal(a.inner, b.inner)
	case KindMacro:
		if len(a.args) != len(b.args) {
			return false
		}
		if a.macro.Kind() != b.macro.Kind() || !a.macro.Equal(b.macro) {
			return false
		}
		for i := range a.args {
			if !Equal(a.args[i], b.args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// EqualSlices compares two expression lists element by element
func EqualSlices(a, b []*Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
