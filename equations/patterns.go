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

package equations

import (
	"github.com/blinklabs-io/eqns/expr"
	"github.com/blinklabs-io/eqns/name"
)

// MkEquation builds the equation lhs := rhs. ignoreIfUnused suppresses the
// "equation not used" diagnostic in the match compiler.
func (m *Markers) MkEquation(lhs *expr.Expr, rhs *expr.Expr, ignoreIfUnused bool) *expr.Expr {
	m.check("MkEquation")
	if ignoreIfUnused {
		return expr.MData(m.equationIgnoreIfUnused, expr.App(lhs, rhs))
	}
	return expr.MData(m.equation, expr.App(lhs, rhs))
}

// MkNoEquation builds the placeholder for a case intentionally left out
func (m *Markers) MkNoEquation() *expr.Expr {
	m.check("MkNoEquation")
	return expr.MData(m.noEquation, expr.Prop())
}

// hasTag reports whether e carries key bound to a bool. The value itself
// is not consulted.
func hasTag(e *expr.Expr, key name.Name) bool {
	if !e.IsMData() {
		return false
	}
	_, ok := e.MDataMap().GetBool(key)
	return ok
}

func (m *Markers) IsEquation(e *expr.Expr) bool {
	m.check("IsEquation")
	return hasTag(e, m.equationName)
}

func (m *Markers) IsNoEquation(e *expr.Expr) bool {
	m.check("IsNoEquation")
	return hasTag(e, m.noEquationName)
}

// IsLambdaEquation strips leading lambdas and tests for an equation
func (m *Markers) IsLambdaEquation(e *expr.Expr) bool {
	return m.IsEquation(stripLambdas(e))
}

// IsLambdaNoEquation strips leading lambdas and tests for a no-equation
func (m *Markers) IsLambdaNoEquation(e *expr.Expr) bool {
	return m.IsNoEquation(stripLambdas(e))
}

func (m *Markers) isEquationShaped(e *expr.Expr) bool {
	body := stripLambdas(e)
	return hasTag(body, m.equationName) || hasTag(body, m.noEquationName)
}

func stripLambdas(e *expr.Expr) *expr.Expr {
	for e.IsLambda() {
		e = e.BindingBody()
	}
	return e
}

// IgnoreIfUnused returns the flag the equation was built with
func (m *Markers) IgnoreIfUnused(e *expr.Expr) bool {
	if !m.IsEquation(e) {
		expr.Violation("IgnoreIfUnused", "expected equation, got %s", e)
	}
	v, _ := e.MDataMap().GetBool(m.equationName)
	return v
}

func (m *Markers) EquationLhs(e *expr.Expr) *expr.Expr {
	if !m.IsEquation(e) {
		expr.Violation("EquationLhs", "expected equation, got %s", e)
	}
	return e.MDataExpr().AppFn()
}

func (m *Markers) EquationRhs(e *expr.Expr) *expr.Expr {
	if !m.IsEquation(e) {
		expr.Violation("EquationRhs", "expected equation, got %s", e)
	}
	return e.MDataExpr().AppArg()
}

// MkAsPattern builds the pattern lhs@rhs: bind the variable lhs and also
// match the sub-pattern rhs
func (m *Markers) MkAsPattern(lhs *expr.Expr, rhs *expr.Expr) *expr.Expr {
	m.check("MkAsPattern")
	return expr.MData(m.asPattern, expr.App(lhs, rhs))
}

func (m *Markers) IsAsPattern(e *expr.Expr) bool {
	m.check("IsAsPattern")
	return hasTag(e, m.asPatternName)
}

func (m *Markers) AsPatternLhs(e *expr.Expr) *expr.Expr {
	if !m.IsAsPattern(e) {
		expr.Violation("AsPatternLhs", "expected as-pattern, got %s", e)
	}
	return e.MDataExpr().AppFn()
}

func (m *Markers) AsPatternRhs(e *expr.Expr) *expr.Expr {
	if !m.IsAsPattern(e) {
		expr.Violation("AsPatternRhs", "expected as-pattern, got %s", e)
	}
	return e.MDataExpr().AppArg()
}

// MkInaccessible marks e as a pattern position fixed by unification
func (m *Markers) MkInaccessible(e *expr.Expr) *expr.Expr {
	m.check("MkInaccessible")
	return expr.MkAnnotation(m.inaccessibleName, e)
}

func (m *Markers) IsInaccessible(e *expr.Expr) bool {
	m.check("IsInaccessible")
	return expr.IsAnnotation(e, m.inaccessibleName)
}
