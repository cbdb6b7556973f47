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

// Package expr implements the expression tree shared by the elaborator, the
// match compiler and the persistent definition store.
//
// Nodes are immutable and structurally shared. Every node kind is a variant
// of a closed enumeration (Kind); extension nodes are Macro nodes whose
// payload implements MacroDef and is identified by a MacroKind.
//
// Nodes are persisted with Encoder and restored with Decoder. Macro payloads
// write their own opcode and header; the matching reader is looked up in a
// MacroRegistry supplied to the decoder.
package expr
