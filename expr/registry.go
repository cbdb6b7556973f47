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

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MacroReader rebuilds a macro node from the stream. It is called after the
// macro arguments and the opcode have been read, and must consume exactly
// the fields written by the matching MacroDef.Write.
type MacroReader func(d *Decoder, args []*Expr) (*Expr, error)

// MacroRegistry maps opcodes to macro readers. It is populated once at
// startup and may be shared by any number of decoders afterwards.
type MacroRegistry struct {
	mu      sync.RWMutex
	readers map[string]MacroReader
}

func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{
		readers: make(map[string]MacroReader),
	}
}

// Register adds a reader for the given opcode. Registering an opcode twice is an error.
func (r *MacroRegistry) Register(opcode string, reader MacroReader) error {
	if opcode == "" {
		return errors.New("macro opcode must not be empty")
	}
	if reader == nil {
		return fmt.Errorf("macro reader for opcode %q is nil", opcode)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.readers[opcode]; ok {
		return fmt.Errorf("macro opcode %q already registered", opcode)
	}
	r.readers[opcode] = reader
	return nil
}

func (r *MacroRegistry) Unregister(opcode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.readers, opcode)
}

func (r *MacroRegistry) Lookup(opcode string) (MacroReader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reader, ok := r.readers[opcode]
	return reader, ok
}

// Opcodes returns the registered opcodes in sorted order
func (r *MacroRegistry) Opcodes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]string, 0, len(r.readers))
	for opcode := range r.readers {
		ret = append(ret, opcode)
	}
	slices.Sort(ret)
	return ret
}
