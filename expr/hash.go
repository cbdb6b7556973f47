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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// computeHash returns a 64-bit structural hash of the node. Child hashes are
// combined order-dependently. Binder names and source positions are not
// hashed, matching Equal. The hash is deterministic across processes so it
// can be used for on-disk cache keys.
func computeHash(e *Expr) uint64 {
	h := xxhash.New()
	var b [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(b[:], v)
		_, _ = h.Write(b[:])
	}
	_, _ = h.Write([]byte{byte(e.kind)})
	switch e.kind {
	case KindBVar, KindSort:
		writeUint(e.value)
	case KindConst:
		_, _ = h.WriteString(string(e.name))
	case KindApp:
		writeUint(e.fn.hash)
		writeUint(e.arg.hash)
	case KindLambda, KindPi:
		writeUint(e.binderType.hash)
		writeUint(e.body.hash)
	case KindMData:
		writeUint(e.data.hash())
		writeUint(e.inner.hash)
	case KindMacro:
		// Equal macro definitions always share kind and name
		_, _ = h.Write([]byte{byte(e.macro.Kind())})
		_, _ = h.WriteString(e.macro.Name().String())
		for _, arg := range e.args {
			writeUint(arg.hash)
		}
	}
	return h.Sum64()
}

// computeBVarRange returns one more than the largest loose bound variable
// index occurring in e, or 0 if e is closed
func computeBVarRange(e *Expr) uint64 {
	switch e.kind {
	case KindBVar:
		return e.value + 1
	case KindApp:
		return max(e.fn.bvarRange, e.arg.bvarRange)
	case KindLambda, KindPi:
		bodyRange := e.body.bvarRange
		if bodyRange > 0 {
			bodyRange--
		}
		return max(e.binderType.bvarRange, bodyRange)
	case KindMData:
		return e.inner.bvarRange
	case KindMacro:
		var ret uint64
		for _, arg := range e.args {
			ret = max(ret, arg.bvarRange)
		}
		return ret
	}
	return 0
}
