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
	"github.com/blinklabs-io/eqns/name"
)

// Pos is a source position attached to a node by the parser
type Pos struct {
	Line   uint32
	Column uint32
}

// Expr is an immutable expression tree node. Always handle it by pointer;
// a nil *Expr is never a valid expression.
type Expr struct {
	kind      Kind
	hash      uint64
	bvarRange uint64
	pos       *Pos

	// BVar index or Sort level
	value uint64
	// Const name or binder name
	name name.Name

	// App
	fn  *Expr
	arg *Expr

	// Lambda and Pi
	binderType *Expr
	body       *Expr

	// MData
	data  KVMap
	inner *Expr

	// Macro
	macro MacroDef
	args  []*Expr
}

func finish(e *Expr) *Expr {
	e.bvarRange = computeBVarRange(e)
	e.hash = computeHash(e)
	return e
}

func requireNonNil(op string, exprs ...*Expr) {
	for i, e := range exprs {
		if e == nil {
			Violation(op, "argument %d is nil", i)
		}
	}
}

// BVar is a de Bruijn indexed bound variable
func BVar(idx uint64) *Expr {
	return finish(&Expr{kind: KindBVar, value: idx})
}

func Sort(level uint64) *Expr {
	return finish(&Expr{kind: KindSort, value: level})
}

// Prop is Sort 0. It doubles as a sentinel payload for marker nodes.
func Prop() *Expr {
	return Sort(0)
}

func Const(n name.Name) *Expr {
	return finish(&Expr{kind: KindConst, name: n})
}

func App(fn *Expr, arg *Expr) *Expr {
	requireNonNil("App", fn, arg)
	return finish(&Expr{kind: KindApp, fn: fn, arg: arg})
}

// Apps builds the left-nested application fn a1 ... an
func Apps(fn *Expr, args ...*Expr) *Expr {
	ret := fn
	for _, arg := range args {
		ret = App(ret, arg)
	}
	return ret
}

func Lambda(binderName name.Name, binderType *Expr, body *Expr) *Expr {
	requireNonNil("Lambda", binderType, body)
	return finish(&Expr{
		kind:       KindLambda,
		name:       binderName,
		binderType: binderType,
		body:       body,
	})
}

func Pi(binderName name.Name, binderType *Expr, body *Expr) *Expr {
	requireNonNil("Pi", binderType, body)
	return finish(&Expr{
		kind:       KindPi,
		name:       binderName,
		binderType: binderType,
		body:       body,
	})
}

// MData wraps e with a metadata map. The wrapper is transparent to typing.
func MData(data KVMap, e *Expr) *Expr {
	requireNonNil("MData", e)
	return finish(&Expr{kind: KindMData, data: data, inner: e})
}

func Macro(def MacroDef, args ...*Expr) *Expr {
	if def == nil {
		Violation("Macro", "macro definition is nil")
	}
	requireNonNil("Macro", args...)
	return finish(&Expr{
		kind:  KindMacro,
		macro: def,
		args:  append([]*Expr(nil), args...),
	})
}

func (e *Expr) Kind() Kind { return e.kind }

// Hash returns the structural hash of the node
func (e *Expr) Hash() uint64 { return e.hash }

func (e *Expr) IsBVar() bool   { return e.kind == KindBVar }
func (e *Expr) IsSort() bool   { return e.kind == KindSort }
func (e *Expr) IsConst() bool  { return e.kind == KindConst }
func (e *Expr) IsApp() bool    { return e.kind == KindApp }
func (e *Expr) IsLambda() bool { return e.kind == KindLambda }
func (e *Expr) IsPi() bool     { return e.kind == KindPi }
func (e *Expr) IsMData() bool  { return e.kind == KindMData }
func (e *Expr) IsMacro() bool  { return e.kind == KindMacro }

func (e *Expr) IsBinding() bool {
	return e.kind == KindLambda || e.kind == KindPi
}

// expect and expectBinding build their diagnostics only on failure, keeping
// accessors allocation free
func (e *Expr) expect(op string, kind Kind) {
	if e.kind != kind {
		Violation(op, "expected [%s] node, got %s", kind, e.kind)
	}
}

func (e *Expr) expectBinding(op string) {
	if !e.IsBinding() {
		Violation(op, "expected [%s %s] node, got %s", KindLambda, KindPi, e.kind)
	}
}

func (e *Expr) BVarIdx() uint64 {
	e.expect("BVarIdx", KindBVar)
	return e.value
}

func (e *Expr) SortLevel() uint64 {
	e.expect("SortLevel", KindSort)
	return e.value
}

func (e *Expr) ConstName() name.Name {
	e.expect("ConstName", KindConst)
	return e.name
}

func (e *Expr) AppFn() *Expr {
	e.expect("AppFn", KindApp)
	return e.fn
}

func (e *Expr) AppArg() *Expr {
	e.expect("AppArg", KindApp)
	return e.arg
}

func (e *Expr) BindingName() name.Name {
	e.expectBinding("BindingName")
	return e.name
}

func (e *Expr) BindingDomain() *Expr {
	e.expectBinding("BindingDomain")
	return e.binderType
}

func (e *Expr) BindingBody() *Expr {
	e.expectBinding("BindingBody")
	return e.body
}

func (e *Expr) MDataMap() KVMap {
	e.expect("MDataMap", KindMData)
	return e.data
}

func (e *Expr) MDataExpr() *Expr {
	e.expect("MDataExpr", KindMData)
	return e.inner
}

func (e *Expr) MacroDef() MacroDef {
	e.expect("MacroDef", KindMacro)
	return e.macro
}

func (e *Expr) NumMacroArgs() int {
	e.expect("NumMacroArgs", KindMacro)
	return len(e.args)
}

func (e *Expr) MacroArg(i int) *Expr {
	e.expect("MacroArg", KindMacro)
	if i < 0 || i >= len(e.args) {
		Violation("MacroArg", "index %d out of range [0, %d)", i, len(e.args))
	}
	return e.args[i]
}

// MacroArgs returns a copy of the macro arguments
func (e *Expr) MacroArgs() []*Expr {
	e.expect("MacroArgs", KindMacro)
	return append([]*Expr(nil), e.args...)
}

// Pos returns the source position of the node, if one was recorded
func (e *Expr) Pos() (Pos, bool) {
	if e.pos == nil {
		return Pos{}, false
	}
	return *e.pos, true
}

// WithPos returns a copy of e carrying the given source position
func (e *Expr) WithPos(p Pos) *Expr {
	ret := *e
	ret.pos = &p
	return &ret
}

// CopyPos returns a copy of to carrying the source position of from. If from
// has no position, to is returned as is.
func CopyPos(from *Expr, to *Expr) *Expr {
	requireNonNil("CopyPos", from, to)
	if from.pos == nil {
		return to
	}
	return to.WithPos(*from.pos)
}
