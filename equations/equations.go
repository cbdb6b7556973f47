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

// equationsMacro is the payload of an equations node
type equationsMacro struct {
	header Header
	name   name.Name
	opcode string
}

func (m *Markers) newMacro(header Header) *equationsMacro {
	return &equationsMacro{
		header: header.Clone(),
		name:   m.equationsName,
		opcode: m.opcode,
	}
}

func (d *equationsMacro) Kind() expr.MacroKind {
	return expr.MacroKindEquations
}

func (d *equationsMacro) Name() name.Name {
	return d.name
}

func (d *equationsMacro) CheckType(
	_ *expr.Expr,
	_ expr.TypeContext,
	_ bool,
) (*expr.Expr, error) {
	panic(ErrUnexpectedEquations)
}

func (d *equationsMacro) Expand(
	_ *expr.Expr,
	_ expr.TypeContext,
) (*expr.Expr, bool, error) {
	panic(ErrUnexpectedEquations)
}

func (d *equationsMacro) Write(enc *expr.Encoder) error {
	h := d.header
	if err := enc.WriteString(d.opcode); err != nil {
		return err
	}
	if err := enc.WriteUint(uint64(h.NumFns)); err != nil {
		return err
	}
	for _, flag := range []bool{h.IsPrivate, h.IsMeta, h.IsNoncomputable, h.IsLemma} {
		if err := enc.WriteBool(flag); err != nil {
			return err
		}
	}
	if err := enc.WriteNames(h.AuxLemmas); err != nil {
		return err
	}
	if err := enc.WriteBool(h.PrevErrors); err != nil {
		return err
	}
	if err := enc.WriteBool(h.GenCode); err != nil {
		return err
	}
	if err := enc.WriteNames(h.FnNames); err != nil {
		return err
	}
	return enc.WriteNames(h.FnActualNames)
}

func (d *equationsMacro) Equal(other expr.MacroDef) bool {
	o, ok := other.(*equationsMacro)
	if !ok {
		return false
	}
	return d.header.Equal(o.header)
}

func (m *Markers) validateHeader(op string, header Header) {
	if err := header.Validate(); err != nil {
		expr.Violation(op, "%s", err)
	}
}

// MkEquations bundles equation children under header. Every child must be
// an equation or a no-equation, possibly under lambdas.
func (m *Markers) MkEquations(header Header, children []*expr.Expr) *expr.Expr {
	m.check("MkEquations")
	m.validateHeader("MkEquations", header)
	if len(children) == 0 {
		expr.Violation("MkEquations", "at least one equation is required")
	}
	for i, child := range children {
		if !m.IsLambdaEquation(child) && !m.IsLambdaNoEquation(child) {
			expr.Violation("MkEquations", "child %d is not an equation: %s", i, child)
		}
	}
	return expr.Macro(m.newMacro(header), children...)
}

// MkEquationsWithProof bundles equation children with a trailing
// well-founded termination proof script. No-equation children are not
// allowed alongside a proof script.
func (m *Markers) MkEquationsWithProof(
	header Header,
	children []*expr.Expr,
	proofScript *expr.Expr,
) *expr.Expr {
	m.check("MkEquationsWithProof")
	m.validateHeader("MkEquationsWithProof", header)
	if len(children) == 0 {
		expr.Violation("MkEquationsWithProof", "at least one equation is required")
	}
	for i, child := range children {
		if !m.IsLambdaEquation(child) {
			expr.Violation("MkEquationsWithProof", "child %d is not an equation: %s", i, child)
		}
	}
	if proofScript == nil || m.isEquationShaped(proofScript) {
		expr.Violation("MkEquationsWithProof", "proof script must not be an equation")
	}
	args := make([]*expr.Expr, 0, len(children)+1)
	args = append(args, children...)
	args = append(args, proofScript)
	return expr.Macro(m.newMacro(header), args...)
}

func (m *Markers) IsEquations(e *expr.Expr) bool {
	m.check("IsEquations")
	return e.IsMacro() && e.MacroDef().Kind() == expr.MacroKindEquations
}

func (m *Markers) expectEquations(op string, e *expr.Expr) *equationsMacro {
	if !m.IsEquations(e) {
		expr.Violation(op, "expected equations node, got %s", e)
	}
	def, ok := e.MacroDef().(*equationsMacro)
	if !ok {
		expr.Violation(op, "equations node has foreign payload %T", e.MacroDef())
	}
	return def
}

// IsWellFounded reports whether the last child of e is a termination proof
// script rather than an equation
func (m *Markers) IsWellFounded(e *expr.Expr) bool {
	m.expectEquations("IsWellFounded", e)
	n := e.NumMacroArgs()
	return n >= 2 && !m.isEquationShaped(e.MacroArg(n-1))
}

// EquationCount is the number of children that are equations
func (m *Markers) EquationCount(e *expr.Expr) int {
	m.expectEquations("EquationCount", e)
	if m.IsWellFounded(e) {
		return e.NumMacroArgs() - 1
	}
	return e.NumMacroArgs()
}

// HeaderOf returns a copy of the header of e
func (m *Markers) HeaderOf(e *expr.Expr) Header {
	return m.expectEquations("HeaderOf", e).header.Clone()
}

func (m *Markers) NumFns(e *expr.Expr) uint32 {
	return m.expectEquations("NumFns", e).header.NumFns
}

func (m *Markers) ProofScriptOf(e *expr.Expr) *expr.Expr {
	if !m.IsWellFounded(e) {
		expr.Violation("ProofScriptOf", "expected well-founded equations, got %s", e)
	}
	return e.MacroArg(e.NumMacroArgs() - 1)
}

// ToEquationList returns the equation children of e without the proof script
func (m *Markers) ToEquationList(e *expr.Expr) []*expr.Expr {
	args := e.MacroArgs()
	if m.IsWellFounded(e) {
		args = args[:len(args)-1]
	}
	ret := make([]*expr.Expr, len(args))
	copy(ret, args)
	return ret
}

// rebuild creates an equations node from header and equation children,
// re-attaching the proof script of orig when orig is well-founded
func (m *Markers) rebuild(
	op string,
	orig *expr.Expr,
	header Header,
	children []*expr.Expr,
) *expr.Expr {
	var ret *expr.Expr
	if m.IsWellFounded(orig) {
		ret = m.MkEquationsWithProof(header, children, m.ProofScriptOf(orig))
	} else {
		ret = m.MkEquations(header, children)
	}
	m.logger.Debug(
		"equations node rebuilt",
		"op", op,
		"equations", len(children),
	)
	return expr.CopyPos(orig, ret)
}

// UpdateChildren replaces the equation children of e. newChildren holds
// equations only: the proof script of e, if any, is carried over.
func (m *Markers) UpdateChildren(e *expr.Expr, newChildren []*expr.Expr) *expr.Expr {
	def := m.expectEquations("UpdateChildren", e)
	return m.rebuild("UpdateChildren", e, def.header, newChildren)
}

// UpdateHeader replaces the header of e, keeping its children
func (m *Markers) UpdateHeader(e *expr.Expr, header Header) *expr.Expr {
	m.expectEquations("UpdateHeader", e)
	return m.rebuild("UpdateHeader", e, header, m.ToEquationList(e))
}

// StripWellFounded drops the proof script of e. Nodes without one are
// returned unchanged.
func (m *Markers) StripWellFounded(e *expr.Expr) *expr.Expr {
	def := m.expectEquations("StripWellFounded", e)
	if !m.IsWellFounded(e) {
		return e
	}
	return expr.CopyPos(e, m.MkEquations(def.header, m.ToEquationList(e)))
}
