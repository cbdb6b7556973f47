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

import (
	"fmt"

	"github.com/blinklabs-io/eqns/name"
)

// MacroKind identifies the variant of a macro node payload
type MacroKind uint8

const (
	MacroKindEquations MacroKind = iota + 1
)

func (k MacroKind) String() string {
	switch k {
	case MacroKindEquations:
		return "equations"
	default:
		return fmt.Sprintf("macro-kind(%d)", uint8(k))
	}
}

// TypeContext is the type checker state handed to macro definitions
type TypeContext interface {
	Infer(e *Expr) (*Expr, error)
	WHNF(e *Expr) (*Expr, error)
}

// MacroDef is the payload of a macro node.
//
// Equal is only consulted after the kinds of both definitions matched.
// Write must emit the opcode the definition's reader is registered under,
// followed by the definition's own fields; the macro arguments are written
// by the Encoder before Write is called.
type MacroDef interface {
	Kind() MacroKind
	Name() name.Name
	CheckType(e *Expr, ctx TypeContext, inferOnly bool) (*Expr, error)
	Expand(e *Expr, ctx TypeContext) (*Expr, bool, error)
	Write(enc *Encoder) error
	Equal(other MacroDef) bool
}

// CheckMacroType infers the type of a macro node by delegating to its definition
func CheckMacroType(e *Expr, ctx TypeContext, inferOnly bool) (*Expr, error) {
	return e.MacroDef().CheckType(e, ctx, inferOnly)
}

// ExpandMacro unfolds one layer of a macro node. ok is false when the
// definition has no expansion.
func ExpandMacro(e *Expr, ctx TypeContext) (*Expr, bool, error) {
	return e.MacroDef().Expand(e, ctx)
}

// UpdateMacro returns a macro node with the definition of e and new
// arguments, keeping the source position of e
func UpdateMacro(e *Expr, args []*Expr) *Expr {
	def := e.MacroDef()
	if EqualPointers(e.args, args) {
		return e
	}
	return CopyPos(e, Macro(def, args...))
}

// EqualPointers reports whether both lists hold the very same nodes
func EqualPointers(a, b []*Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
