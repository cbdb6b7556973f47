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

// Package cbor provides the CBOR primitives used by the expression stream codec.
//
// It wraps github.com/fxamacker/cbor/v2 with cached encode/decode modes and a
// pair of stream types that read and write a flat sequence of CBOR items.
//
// # Wire primitives
//
// The expression codec relies on three properties of CBOR:
//
//   - unsigned integers are variable length (1, 2, 3, 5 or 9 bytes)
//   - booleans are always exactly one byte (0xf4 / 0xf5)
//   - arrays and text strings carry a length prefix
//
// so a sequence written with StreamEncoder needs no extra framing.
package cbor
