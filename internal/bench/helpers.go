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

// Package bench provides benchmark utilities and fixtures for the expression
// codec and equations bundles.
package bench

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/eqns/equations"
	"github.com/blinklabs-io/eqns/expr"
	"github.com/blinklabs-io/eqns/name"
)

// BundleFixture contains a pre-built equations bundle for benchmarking.
type BundleFixture struct {
	Name     string
	Markers  *equations.Markers
	Registry *expr.MacroRegistry
	Expr     *expr.Expr
	Cbor     []byte
}

// Close releases the markers of the fixture
func (f *BundleFixture) Close() {
	f.Markers.Finalize()
}

type bundleShape struct {
	numFns      uint32
	equations   int
	noEquations int
	wellFounded bool
}

var bundleShapes = map[string]bundleShape{
	"single":      {numFns: 1, equations: 1},
	"mutual":      {numFns: 2, equations: 3, noEquations: 1},
	"wellfounded": {numFns: 1, equations: 3, wellFounded: true},
	"wide":        {numFns: 4, equations: 32},
}

// ShapeNames returns the list of supported bundle shapes.
func ShapeNames() []string {
	return []string{"single", "mutual", "wellfounded", "wide"}
}

// LoadBundleFixture builds and encodes an equations bundle of the given
// shape. The fixture owns its own macro registry.
func LoadBundleFixture(shape string) (*BundleFixture, error) {
	s, ok := bundleShapes[strings.ToLower(shape)]
	if !ok {
		return nil, fmt.Errorf("unknown shape: %s", shape)
	}
	reg := expr.NewMacroRegistry()
	m, err := equations.Initialize(reg)
	if err != nil {
		return nil, err
	}
	e := buildBundle(m, s)
	data, err := expr.EncodeExpr(e)
	if err != nil {
		m.Finalize()
		return nil, fmt.Errorf("encode %s bundle: %w", shape, err)
	}
	return &BundleFixture{
		Name:     shape,
		Markers:  m,
		Registry: reg,
		Expr:     e,
		Cbor:     data,
	}, nil
}

// MustLoadBundleFixture builds a bundle fixture and panics on error.
// Use this in benchmark setup code.
func MustLoadBundleFixture(shape string) *BundleFixture {
	fixture, err := LoadBundleFixture(shape)
	if err != nil {
		panic(fmt.Sprintf("failed to load %s bundle fixture: %v", shape, err))
	}
	return fixture
}

func buildBundle(m *equations.Markers, s bundleShape) *expr.Expr {
	nat := expr.Const(name.New("nat"))
	succ := expr.Const(name.MustParse("nat.succ"))
	header := equations.Header{
		NumFns:    s.numFns,
		AuxLemmas: []name.Name{},
	}
	for i := range s.numFns {
		fn := name.New(fmt.Sprintf("f%d", i))
		header.FnNames = append(header.FnNames, fn)
		header.FnActualNames = append(header.FnActualNames, fn.Append("_main"))
	}
	children := make([]*expr.Expr, 0, s.equations+s.noEquations)
	for i := range s.equations {
		fn := expr.Const(header.FnNames[i%int(s.numFns)])
		// fun x y, f (succ^i x) .(y) := g y x
		pat := expr.BVar(1)
		for range i {
			pat = expr.App(succ, pat)
		}
		lhs := expr.Apps(fn, pat, m.MkInaccessible(expr.BVar(0)))
		rhs := expr.Apps(expr.Const(name.New("g")), expr.BVar(0), expr.BVar(1))
		eq := m.MkEquation(lhs, rhs, i%2 == 0)
		children = append(children, expr.Lambda(
			name.New("x"),
			nat,
			expr.Lambda(name.New("y"), nat, eq),
		))
	}
	for range s.noEquations {
		children = append(children, expr.Lambda(name.New("x"), nat, m.MkNoEquation()))
	}
	if s.wellFounded {
		proof := expr.Apps(
			expr.Const(name.MustParse("well_founded.tactics.default")),
			expr.Const(name.MustParse("nat.lt_wf")),
		)
		return m.MkEquationsWithProof(header, children, proof)
	}
	return m.MkEquations(header, children)
}
