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
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/eqns/expr"
	"github.com/blinklabs-io/eqns/name"
)

// Opcode identifies equations nodes in a persisted expression stream
const Opcode = "Eqns"

const (
	equationsName       name.Name = "equations"
	equationName        name.Name = "equation"
	noEquationName      name.Name = "no_equation"
	inaccessibleName    name.Name = "inaccessible"
	equationsResultName name.Name = "equations_result"
	asPatternName       name.Name = "as_pattern"
)

type MarkersOptionFunc func(*Markers)

// WithLogger specifies the logger to use. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) MarkersOptionFunc {
	return func(m *Markers) {
		m.logger = logger
	}
}

// Markers holds the marker names, metadata templates and opcode used to tag
// equations. It is written once by Initialize and only read afterwards, so a
// single value may be shared by any number of goroutines.
type Markers struct {
	logger   *slog.Logger
	registry *expr.MacroRegistry
	live     bool

	equationsName       name.Name
	equationName        name.Name
	noEquationName      name.Name
	inaccessibleName    name.Name
	equationsResultName name.Name
	asPatternName       name.Name
	opcode              string

	equation               expr.KVMap
	equationIgnoreIfUnused expr.KVMap
	noEquation             expr.KVMap
	asPattern              expr.KVMap
}

// Initialize builds the marker context and registers the equations reader
// with registry. It must run before any other operation of this package.
func Initialize(
	registry *expr.MacroRegistry,
	opts ...MarkersOptionFunc,
) (*Markers, error) {
	if registry == nil {
		return nil, errors.New("equations: macro registry is required")
	}
	m := &Markers{
		logger:              slog.Default(),
		registry:            registry,
		equationsName:       equationsName,
		equationName:        equationName,
		noEquationName:      noEquationName,
		inaccessibleName:    inaccessibleName,
		equationsResultName: equationsResultName,
		asPatternName:       asPatternName,
		opcode:              Opcode,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.equation = expr.KVMap{}.SetBool(m.equationName, false)
	m.equationIgnoreIfUnused = expr.KVMap{}.SetBool(m.equationName, true)
	m.noEquation = expr.KVMap{}.SetBool(m.noEquationName, true)
	m.asPattern = expr.KVMap{}.SetBool(m.asPatternName, true)
	if err := registry.Register(m.opcode, m.readEquations); err != nil {
		return nil, fmt.Errorf("equations: register reader: %w", err)
	}
	m.live = true
	m.logger.Debug(
		"equations markers initialized",
		"opcode",
		m.opcode,
	)
	return m, nil
}

// Finalize unregisters the equations reader and releases the markers. Any
// later use of m panics. Calling Finalize again does nothing.
func (m *Markers) Finalize() {
	if !m.live {
		return
	}
	m.registry.Unregister(m.opcode)
	m.logger.Debug(
		"equations markers finalized",
		"opcode",
		m.opcode,
	)
	*m = Markers{logger: m.logger}
}

func (m *Markers) check(op string) {
	if !m.live {
		expr.Violation(op, "equations markers used outside of Initialize/Finalize")
	}
}

// InaccessibleName is the annotation kind used by MkInaccessible
func (m *Markers) InaccessibleName() name.Name {
	m.check("InaccessibleName")
	return m.inaccessibleName
}
