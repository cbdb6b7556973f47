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

package expr_test

import (
	"testing"

	"github.com/blinklabs-io/eqns/expr"
	"github.com/blinklabs-io/eqns/name"
	"github.com/stretchr/testify/assert"
)

func TestInstantiate(t *testing.T) {
	nat := expr.Const(name.New("nat"))
	f := expr.Const(name.New("f"))
	zero := expr.Const(name.MustParse("nat.zero"))
	// fun y, f #1 #0   with #1 bound outside
	body := expr.Lambda(name.New("y"), nat, expr.Apps(f, expr.BVar(1), expr.BVar(0)))
	got := expr.Instantiate(body, zero)
	want := expr.Lambda(name.New("y"), nat, expr.Apps(f, zero, expr.BVar(0)))
	assert.True(t, expr.Equal(want, got), "got %s", got)

	// Loose variables of the substituted value are lifted under binders
	got = expr.Instantiate(body, expr.BVar(0))
	want = expr.Lambda(name.New("y"), nat, expr.Apps(f, expr.BVar(1), expr.BVar(0)))
	assert.True(t, expr.Equal(want, got), "got %s", got)

	// Variables above the substituted one are lowered
	got = expr.Instantiate(expr.App(expr.BVar(0), expr.BVar(2)), zero)
	assert.True(t, expr.Equal(expr.App(zero, expr.BVar(1)), got), "got %s", got)
}

func TestHasLooseBVars(t *testing.T) {
	nat := expr.Const(name.New("nat"))
	assert.True(t, expr.HasLooseBVars(expr.BVar(0)))
	assert.False(t, expr.HasLooseBVars(expr.Lambda(name.New("x"), nat, expr.BVar(0))))
	assert.True(t, expr.HasLooseBVars(expr.Lambda(name.New("x"), nat, expr.BVar(1))))
	assert.False(t, expr.HasLooseBVars(nat))
}

func TestReplaceSharesUnchangedSubtrees(t *testing.T) {
	f := expr.Const(name.New("f"))
	g := expr.Const(name.New("g"))
	left := expr.App(f, f)
	e := expr.App(left, g).WithPos(expr.Pos{Line: 1, Column: 2})

	same := expr.Replace(e, func(*expr.Expr, uint64) *expr.Expr { return nil })
	assert.Same(t, e, same)

	swapped := expr.Replace(e, func(sub *expr.Expr, _ uint64) *expr.Expr {
		if sub.IsConst() && sub.ConstName() == name.New("g") {
			return f
		}
		return nil
	})
	assert.True(t, expr.Equal(expr.App(left, f), swapped))
	assert.Same(t, left, swapped.AppFn())
	pos, ok := swapped.Pos()
	assert.True(t, ok)
	assert.Equal(t, expr.Pos{Line: 1, Column: 2}, pos)
}

func TestLiftLooseBVars(t *testing.T) {
	nat := expr.Const(name.New("nat"))
	e := expr.Lambda(name.New("x"), nat, expr.App(expr.BVar(0), expr.BVar(1)))
	got := expr.LiftLooseBVars(e, 2)
	want := expr.Lambda(name.New("x"), nat, expr.App(expr.BVar(0), expr.BVar(3)))
	assert.True(t, expr.Equal(want, got), "got %s", got)
	assert.Same(t, e, expr.LiftLooseBVars(e, 0))
}
