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
	"bytes"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/eqns/equations"
	"github.com/blinklabs-io/eqns/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRegistersReader(t *testing.T) {
	_, reg := newTestMarkers(t)
	assert.Equal(t, []string{equations.Opcode}, reg.Opcodes())
	_, ok := reg.Lookup(equations.Opcode)
	assert.True(t, ok)
}

func TestInitializeNilRegistry(t *testing.T) {
	m, err := equations.Initialize(nil)
	require.Error(t, err)
	assert.Nil(t, m)
}

func TestInitializeTwice(t *testing.T) {
	_, reg := newTestMarkers(t)
	_, err := equations.Initialize(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), equations.Opcode)
}

func TestFinalize(t *testing.T) {
	reg := expr.NewMacroRegistry()
	m, err := equations.Initialize(reg)
	require.NoError(t, err)
	m.Finalize()
	assert.Empty(t, reg.Opcodes())
	// A second call does nothing
	m.Finalize()
	requireViolation(t, "MkNoEquation", func() {
		m.MkNoEquation()
	})
	requireViolation(t, "IsEquation", func() {
		m.IsEquation(natZero)
	})
	// The opcode is free again
	m2, err := equations.Initialize(reg)
	require.NoError(t, err)
	m2.Finalize()
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	m, err := equations.Initialize(expr.NewMacroRegistry(), equations.WithLogger(logger))
	require.NoError(t, err)
	m.Finalize()
	assert.Contains(t, buf.String(), "equations markers initialized")
	assert.Contains(t, buf.String(), "equations markers finalized")
	assert.Contains(t, buf.String(), "opcode=Eqns")
}

func TestInaccessibleName(t *testing.T) {
	m, _ := newTestMarkers(t)
	assert.Equal(t, "inaccessible", m.InaccessibleName().String())
}
