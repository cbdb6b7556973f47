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

// ReplaceFunc is called on every subterm visited by Replace along with the
// number of binders crossed to reach it. Returning nil keeps traversing.
type ReplaceFunc func(e *Expr, offset uint64) *Expr

// Replace rebuilds e bottom-up, substituting every subterm for which fn
// returns a non-nil result. Unchanged subtrees are shared with e and
// rebuilt nodes keep their source position. Macro nodes are rebuilt with
// the same definition and replaced arguments.
func Replace(e *Expr, fn ReplaceFunc) *Expr {
	return replace(e, fn, 0)
}

func replace(e *Expr, fn ReplaceFunc, offset uint64) *Expr {
	if r := fn(e, offset); r != nil {
		return r
	}
	switch e.kind {
	case KindApp:
		newFn := replace(e.fn, fn, offset)
		newArg := replace(e.arg, fn, offset)
		if newFn == e.fn && newArg == e.arg {
			return e
		}
		return CopyPos(e, App(newFn, newArg))
	case KindLambda, KindPi:
		newType := replace(e.binderType, fn, offset)
		newBody := replace(e.body, fn, offset+1)
		if newType == e.binderType && newBody == e.body {
			return e
		}
		if e.kind == KindLambda {
			return CopyPos(e, Lambda(e.name, newType, newBody))
		}
		return CopyPos(e, Pi(e.name, newType, newBody))
	case KindMData:
		newInner := replace(e.inner, fn, offset)
		if newInner == e.inner {
			return e
		}
		return CopyPos(e, MData(e.data, newInner))
	case KindMacro:
		newArgs := make([]*Expr, len(e.args))
		for i, arg := range e.args {
			newArgs[i] = replace(arg, fn, offset)
		}
		return UpdateMacro(e, newArgs)
	}
	return e
}

// HasLooseBVars reports whether e refers to a binder outside of itself
func HasLooseBVars(e *Expr) bool {
	return e.bvarRange > 0
}

// LiftLooseBVars shifts every loose bound variable of e by d
func LiftLooseBVars(e *Expr, d uint64) *Expr {
	if d == 0 {
		return e
	}
	return Replace(e, func(sub *Expr, offset uint64) *Expr {
		if sub.bvarRange <= offset {
			return sub
		}
		if sub.kind == KindBVar {
			return CopyPos(sub, BVar(sub.value+d))
		}
		return nil
	})
}

// Instantiate substitutes v for the loose bound variable 0 of body, as when
// entering the body of a binder applied to v
func Instantiate(body *Expr, v *Expr) *Expr {
	requireNonNil("Instantiate", body, v)
	return Replace(body, func(sub *Expr, offset uint64) *Expr {
		if sub.bvarRange <= offset {
			return sub
		}
		if sub.kind == KindBVar {
			switch {
			case sub.value == offset:
				return LiftLooseBVars(v, offset)
			case sub.value > offset:
				return CopyPos(sub, BVar(sub.value-1))
			}
			return sub
		}
		return nil
	})
}
