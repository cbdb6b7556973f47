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
)

// ErrCorruptedStream is matched (via errors.Is) by every error reported for
// malformed persisted data
var ErrCorruptedStream = errors.New("corrupted stream")

// CorruptedStreamError describes malformed persisted data
type CorruptedStreamError struct {
	Offset int
	Reason string
	Err    error
}

func (e *CorruptedStreamError) Error() string {
	msg := fmt.Sprintf("corrupted stream at offset %d: %s", e.Offset, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CorruptedStreamError) Unwrap() error { return e.Err }

func (*CorruptedStreamError) Is(target error) bool {
	return target == ErrCorruptedStream
}

// ContractViolationError is the panic value raised when an operation is
// invoked on a node that does not satisfy its precondition
type ContractViolationError struct {
	Op           string
	Precondition string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Precondition)
}

// Violation panics with a ContractViolationError
func Violation(op string, format string, args ...any) {
	panic(&ContractViolationError{
		Op:           op,
		Precondition: fmt.Sprintf(format, args...),
	})
}
