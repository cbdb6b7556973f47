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

var (
	natType  = expr.Const(name.New("nat"))
	natZero  = expr.Const(name.MustParse("nat.zero"))
	fnConst  = expr.Const(name.New("f"))
	tacConst = expr.Const(name.MustParse("tactic.wf"))
)

func newTestMarkers(t *testing.T) (*equations.Markers, *expr.MacroRegistry) {
	t.Helper()
	reg := expr.NewMacroRegistry()
	m, err := equations.Initialize(reg)
	require.NoError(t, err)
	t.Cleanup(m.Finalize)
	return m, reg
}

func testHeader() equations.Header {
	return equations.Header{
		NumFns:        1,
		FnNames:       []name.Name{name.New("f")},
		FnActualNames: []name.Name{name.MustParse("f._main")},
		AuxLemmas:     []name.Name{},
	}
}

// lambdaEquation builds fun x : nat, f x := rhs
func lambdaEquation(m *equations.Markers, rhs *expr.Expr) *expr.Expr {
	return expr.Lambda(
		name.New("x"),
		natType,
		m.MkEquation(expr.App(fnConst, expr.BVar(0)), rhs, false),
	)
}

func lambdaNoEquation(m *equations.Markers) *expr.Expr {
	return expr.Lambda(name.New("x"), natType, m.MkNoEquation())
}

// requireViolation runs fn and checks it panics with a contract violation
// reported by op
func requireViolation(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected %s to panic", op)
		cv, ok := r.(*expr.ContractViolationError)
		require.True(t, ok, "unexpected panic value: %v", r)
		assert.Equal(t, op, cv.Op)
	}()
	fn()
}
