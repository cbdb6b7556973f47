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

// Package equations represents pattern-matching equation bundles inside the
// expression tree.
//
// An elaborator builds equation bodies with the tagged-node constructors
// (MkEquation, MkNoEquation, MkAsPattern, MkInaccessible), bundles them with
// a Header via MkEquations, and hands the resulting macro node to the rest of
// the pipeline, which treats it as opaque until the match compiler unwraps it.
//
// Every operation is a method on *Markers, the context value created once by
// Initialize and released by Finalize. Initialize also registers the binary
// reader for the "Eqns" opcode with an expr.MacroRegistry, so persisted
// bundles can be restored with expr.DecodeExpr.
//
// A bundle is well founded when it has at least two children and its last
// child is not equation shaped; that child is the termination proof script.
// There is no separate flag: the shape of the last child is the only signal,
// on the wire and in memory.
package equations
