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

	"github.com/blinklabs-io/eqns/name"
	"github.com/jinzhu/copier"
)

// Header describes the definitions bundled in an equations node
type Header struct {
	// Number of mutually recursive functions defined together
	NumFns uint32
	// User facing names
	FnNames []name.Name
	// Possibly mangled internal names
	FnActualNames []name.Name

	IsPrivate       bool
	IsLemma         bool
	IsMeta          bool
	IsNoncomputable bool
	PrevErrors      bool
	GenCode         bool

	// Auxiliary lemmas generated for this bundle
	AuxLemmas []name.Name
}

// Equal compares every field. Name lists are compared in order.
func (h Header) Equal(other Header) bool {
	return h.NumFns == other.NumFns &&
		name.Equal(h.FnNames, other.FnNames) &&
		name.Equal(h.FnActualNames, other.FnActualNames) &&
		h.IsPrivate == other.IsPrivate &&
		h.IsLemma == other.IsLemma &&
		h.IsMeta == other.IsMeta &&
		h.IsNoncomputable == other.IsNoncomputable &&
		name.Equal(h.AuxLemmas, other.AuxLemmas) &&
		h.PrevErrors == other.PrevErrors &&
		h.GenCode == other.GenCode
}

// Clone returns a deep copy of the header that shares no slices with h
func (h Header) Clone() Header {
	var ret Header
	if err := copier.CopyWithOption(&ret, &h, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("unexpected error copying equations header: %s", err))
	}
	return ret
}

// Validate checks the header invariants that the node constructors rely on
func (h Header) Validate() error {
	if h.NumFns == 0 {
		return errors.New("equations header must define at least one function")
	}
	return nil
}
