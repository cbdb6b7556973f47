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

package equations_test

import (
	"testing"

	"github.com/blinklabs-io/eqns/equations"
	"github.com/blinklabs-io/eqns/expr"
	"github.com/blinklabs-io/eqns/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquationsScenario(t *testing.T) {
	m, _ := newTestMarkers(t)
	h := testHeader()
	eq1 := lambdaEquation(m, natZero)
	eq2 := lambdaNoEquation(m)

	e := m.MkEquations(h, []*expr.Expr{eq1, eq2})
	assert.True(t, m.IsEquations(e))
	assert.False(t, m.IsWellFounded(e))
	assert.Equal(t, 2, m.EquationCount(e))
	assert.Equal(t, uint32(1), m.NumFns(e))
	assert.True(t, h.Equal(m.HeaderOf(e)))
	assert.True(t, expr.EqualSlices([]*expr.Expr{eq1, eq2}, m.ToEquationList(e)))

	// A no-equation entry cannot coexist with a proof script
	requireViolation(t, "MkEquationsWithProof", func() {
		m.MkEquationsWithProof(h, []*expr.Expr{eq1, eq2}, tacConst)
	})

	wf := m.MkEquationsWithProof(h, []*expr.Expr{eq1}, tacConst)
	assert.True(t, m.IsWellFounded(wf))
	assert.Equal(t, 1, m.EquationCount(wf))
	assert.True(t, expr.Equal(tacConst, m.ProofScriptOf(wf)))
	assert.True(t, expr.EqualSlices([]*expr.Expr{eq1}, m.ToEquationList(wf)))
	assert.Equal(t, 2, wf.NumMacroArgs())
}

func TestEquationsShape(t *testing.T) {
	m, _ := newTestMarkers(t)
	h := testHeader()
	single := m.MkEquations(h, []*expr.Expr{lambdaEquation(m, natZero)})
	assert.False(t, m.IsWellFounded(single))
	assert.Equal(t, 1, m.EquationCount(single))
	requireViolation(t, "ProofScriptOf", func() {
		m.ProofScriptOf(single)
	})

	for n := 1; n <= 4; n++ {
		children := make([]*expr.Expr, n)
		for i := range children {
			children[i] = lambdaEquation(m, expr.BVar(0))
		}
		e := m.MkEquationsWithProof(h, children, tacConst)
		assert.True(t, m.IsWellFounded(e))
		assert.Equal(t, n, m.EquationCount(e))
		assert.Len(t, m.ToEquationList(e), n)
	}
}

func TestEquationsNotEquations(t *testing.T) {
	m, _ := newTestMarkers(t)
	assert.False(t, m.IsEquations(natZero))
	assert.False(t, m.IsEquations(m.MkNoEquation()))
	requireViolation(t, "IsWellFounded", func() {
		m.IsWellFounded(natZero)
	})
	requireViolation(t, "HeaderOf", func() {
		m.HeaderOf(lambdaEquation(m, natZero))
	})
}

func TestMkEquationsViolations(t *testing.T) {
	m, _ := newTestMarkers(t)
	h := testHeader()
	eq := lambdaEquation(m, natZero)
	testDefs := []struct {
		name string
		op   string
		fn   func()
	}{
		{
			name: "no children",
			op:   "MkEquations",
			fn:   func() { m.MkEquations(h, nil) },
		},
		{
			name: "zero functions",
			op:   "MkEquations",
			fn:   func() { m.MkEquations(equations.Header{}, []*expr.Expr{eq}) },
		},
		{
			name: "non-equation child",
			op:   "MkEquations",
			fn:   func() { m.MkEquations(h, []*expr.Expr{eq, tacConst}) },
		},
		{
			name: "proof without equations",
			op:   "MkEquationsWithProof",
			fn:   func() { m.MkEquationsWithProof(h, nil, tacConst) },
		},
		{
			name: "equation as proof",
			op:   "MkEquationsWithProof",
			fn:   func() { m.MkEquationsWithProof(h, []*expr.Expr{eq}, eq) },
		},
		{
			name: "no-equation as proof",
			op:   "MkEquationsWithProof",
			fn:   func() { m.MkEquationsWithProof(h, []*expr.Expr{eq}, m.MkNoEquation()) },
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			requireViolation(t, testDef.op, testDef.fn)
		})
	}
}

func TestEquationsHeaderIsCopied(t *testing.T) {
	m, _ := newTestMarkers(t)
	h := testHeader()
	e := m.MkEquations(h, []*expr.Expr{lambdaEquation(m, natZero)})
	h.FnNames[0] = name.New("g")
	got := m.HeaderOf(e)
	assert.Equal(t, "f", got.FnNames[0].String())
	got.FnActualNames[0] = name.New("g")
	assert.Equal(t, "f._main", m.HeaderOf(e).FnActualNames[0].String())
}

func TestEquationsEqualityIsHeaderAware(t *testing.T) {
	m, _ := newTestMarkers(t)
	children := []*expr.Expr{lambdaEquation(m, natZero)}
	a := m.MkEquations(testHeader(), children)
	b := m.MkEquations(testHeader(), children)
	assert.True(t, expr.Equal(a, b))
	h := testHeader()
	h.IsPrivate = true
	c := m.MkEquations(h, children)
	assert.False(t, expr.Equal(a, c))
	d := m.MkEquations(testHeader(), []*expr.Expr{lambdaEquation(m, fnConst)})
	assert.False(t, expr.Equal(a, d))
}

func TestEquationsUnsupportedOperations(t *testing.T) {
	m, _ := newTestMarkers(t)
	e := m.MkEquations(testHeader(), []*expr.Expr{lambdaEquation(m, natZero)})
	assert.PanicsWithValue(t, equations.ErrUnexpectedEquations, func() {
		_, _ = expr.CheckMacroType(e, nil, true)
	})
	assert.PanicsWithValue(t, equations.ErrUnexpectedEquations, func() {
		_, _, _ = expr.ExpandMacro(e, nil)
	})
	assert.Equal(t, "equations", e.MacroDef().Name().String())
	assert.Equal(t, expr.MacroKindEquations, e.MacroDef().Kind())
}

func TestUpdateHeader(t *testing.T) {
	m, _ := newTestMarkers(t)
	pos := expr.Pos{Line: 12, Column: 4}
	eq := lambdaEquation(m, natZero)
	wf := m.MkEquationsWithProof(testHeader(), []*expr.Expr{eq}, tacConst).WithPos(pos)
	h := testHeader()
	h.IsMeta = true
	got := m.UpdateHeader(wf, h)
	assert.True(t, m.HeaderOf(got).IsMeta)
	assert.False(t, m.HeaderOf(wf).IsMeta)
	assert.True(t, m.IsWellFounded(got))
	assert.True(t, expr.Equal(tacConst, m.ProofScriptOf(got)))
	gotPos, ok := got.Pos()
	require.True(t, ok)
	assert.Equal(t, pos, gotPos)
}

func TestUpdateChildrenKeepsProofScript(t *testing.T) {
	m, _ := newTestMarkers(t)
	pos := expr.Pos{Line: 3, Column: 1}
	eq := lambdaEquation(m, natZero)
	wf := m.MkEquationsWithProof(testHeader(), []*expr.Expr{eq}, tacConst).WithPos(pos)

	// The replacement list ends with an equation; the proof script still
	// comes from the original node
	replacement := []*expr.Expr{eq, lambdaEquation(m, fnConst)}
	got := m.UpdateChildren(wf, replacement)
	assert.True(t, m.IsWellFounded(got))
	assert.Equal(t, 2, m.EquationCount(got))
	assert.True(t, expr.Equal(tacConst, m.ProofScriptOf(got)))
	assert.True(t, expr.EqualSlices(replacement, m.ToEquationList(got)))
	gotPos, ok := got.Pos()
	require.True(t, ok)
	assert.Equal(t, pos, gotPos)

	// A proof script in the replacement is rejected rather than treated as
	// a second proof
	requireViolation(t, "MkEquationsWithProof", func() {
		m.UpdateChildren(wf, []*expr.Expr{eq, tacConst})
	})
}

func TestUpdateChildrenWithoutProofScript(t *testing.T) {
	m, _ := newTestMarkers(t)
	e := m.MkEquations(testHeader(), []*expr.Expr{lambdaEquation(m, natZero)})
	got := m.UpdateChildren(e, []*expr.Expr{lambdaNoEquation(m), lambdaEquation(m, fnConst)})
	assert.False(t, m.IsWellFounded(got))
	assert.Equal(t, 2, m.EquationCount(got))
	_, ok := got.Pos()
	assert.False(t, ok)
	requireViolation(t, "MkEquations", func() {
		m.UpdateChildren(e, []*expr.Expr{lambdaEquation(m, natZero), tacConst})
	})
}

func TestStripWellFounded(t *testing.T) {
	m, _ := newTestMarkers(t)
	pos := expr.Pos{Line: 7, Column: 2}
	eq := lambdaEquation(m, natZero)
	wf := m.MkEquationsWithProof(testHeader(), []*expr.Expr{eq}, tacConst).WithPos(pos)
	got := m.StripWellFounded(wf)
	assert.False(t, m.IsWellFounded(got))
	assert.Equal(t, 1, got.NumMacroArgs())
	assert.True(t, expr.Equal(eq, got.MacroArg(0)))
	assert.True(t, testHeader().Equal(m.HeaderOf(got)))
	gotPos, ok := got.Pos()
	require.True(t, ok)
	assert.Equal(t, pos, gotPos)

	plain := m.MkEquations(testHeader(), []*expr.Expr{eq})
	assert.Same(t, plain, m.StripWellFounded(plain))
}

func TestEquationsReplace(t *testing.T) {
	m, _ := newTestMarkers(t)
	e := m.MkEquations(testHeader(), []*expr.Expr{lambdaEquation(m, natZero)})
	got := expr.Replace(e, func(sub *expr.Expr, _ uint64) *expr.Expr {
		if expr.Equal(sub, natZero) {
			return fnConst
		}
		return nil
	})
	require.True(t, m.IsEquations(got))
	assert.True(t, testHeader().Equal(m.HeaderOf(got)))
	eq := stripLambda(m.ToEquationList(got)[0])
	assert.True(t, expr.Equal(fnConst, m.EquationRhs(eq)))
}

func stripLambda(e *expr.Expr) *expr.Expr {
	for e.IsLambda() {
		e = e.BindingBody()
	}
	return e
}
