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

// Package name provides the hierarchical names used as constant names, binder
// names and metadata keys throughout the expression tree.
package name

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/eqns/cbor"
)

const separator = "."

// Name is a dotted hierarchical name such as "nat.succ" or "f._main".
// The empty name is the anonymous name. Names are comparable and can be used
// directly as map keys.
type Name string

// Anonymous is the empty name
const Anonymous Name = ""

// New builds a name from its components. Empty components are rejected.
func New(parts ...string) Name {
	for _, part := range parts {
		if part == "" {
			panic(fmt.Sprintf("name: empty component in %q", parts))
		}
	}
	return Name(strings.Join(parts, separator))
}

// Parse splits a dotted string into a name
func Parse(s string) (Name, error) {
	if s == "" {
		return Anonymous, nil
	}
	for _, part := range strings.Split(s, separator) {
		if part == "" {
			return Anonymous, fmt.Errorf("invalid name %q: empty component", s)
		}
	}
	return Name(s), nil
}

// MustParse is like Parse but panics on error
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) IsAnonymous() bool {
	return n == Anonymous
}

func (n Name) Components() []string {
	if n.IsAnonymous() {
		return nil
	}
	return strings.Split(string(n), separator)
}

// Append returns a new name with part added as the last component
func (n Name) Append(part string) Name {
	if n.IsAnonymous() {
		return New(part)
	}
	return New(append(n.Components(), part)...)
}

func (n Name) String() string {
	if n.IsAnonymous() {
		return "[anonymous]"
	}
	return string(n)
}

// MarshalCBOR encodes the name as a length-prefixed list of its components
func (n Name) MarshalCBOR() ([]byte, error) {
	parts := n.Components()
	if parts == nil {
		parts = []string{}
	}
	return cbor.Encode(parts)
}

func (n *Name) UnmarshalCBOR(data []byte) error {
	var parts []string
	if _, err := cbor.Decode(data, &parts); err != nil {
		return err
	}
	for _, part := range parts {
		if part == "" {
			return errors.New("invalid name: empty component")
		}
	}
	*n = Name(strings.Join(parts, separator))
	return nil
}

// Equal compares two name lists element by element, in order
func Equal(a, b []Name) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
