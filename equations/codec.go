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
)

// readEquations is the MacroReader registered under Opcode. The opcode has
// already been consumed and args holds the decoded children.
func (m *Markers) readEquations(d *expr.Decoder, args []*expr.Expr) (*expr.Expr, error) {
	var h Header
	var err error
	if h.NumFns, err = d.ReadUint32(); err != nil {
		return nil, err
	}
	for _, flag := range []*bool{&h.IsPrivate, &h.IsMeta, &h.IsNoncomputable, &h.IsLemma} {
		if *flag, err = d.ReadBool(); err != nil {
			return nil, err
		}
	}
	if h.AuxLemmas, err = d.ReadNames(); err != nil {
		return nil, err
	}
	if h.PrevErrors, err = d.ReadBool(); err != nil {
		return nil, err
	}
	if h.GenCode, err = d.ReadBool(); err != nil {
		return nil, err
	}
	if h.FnNames, err = d.ReadNames(); err != nil {
		return nil, err
	}
	if h.FnActualNames, err = d.ReadNames(); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, d.Corrupted(err, "invalid equations header")
	}
	if len(args) == 0 {
		return nil, d.Corrupted(nil, "equations node without children")
	}
	// Every child but the last must be an equation
	last := len(args) - 1
	hasNoEquation := false
	for i, arg := range args[:last] {
		switch {
		case m.IsLambdaEquation(arg):
		case m.IsLambdaNoEquation(arg):
			hasNoEquation = true
		default:
			return nil, d.Corrupted(nil, "equations child %d is not an equation", i)
		}
	}
	if m.isEquationShaped(args[last]) {
		return m.MkEquations(h, args), nil
	}
	if len(args) == 1 {
		return nil, d.Corrupted(nil, "equations node holds a proof script but no equations")
	}
	if hasNoEquation {
		return nil, d.Corrupted(nil, "no-equation child alongside a proof script")
	}
	m.logger.Debug(
		"equations node carries a termination proof script",
		"opcode", m.opcode,
		"equations", last,
	)
	return m.MkEquationsWithProof(h, args[:last], args[last]), nil
}
