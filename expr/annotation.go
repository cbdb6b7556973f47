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
	"github.com/blinklabs-io/eqns/name"
)

// annotationKey is the reserved metadata key carrying the annotation kind
var annotationKey = name.New("annotation")

// MkAnnotation wraps e in a single-child annotation of the given kind
func MkAnnotation(kind name.Name, e *Expr) *Expr {
	if kind.IsAnonymous() {
		Violation("MkAnnotation", "annotation kind must not be anonymous")
	}
	return MData(KVMap{}.SetName(annotationKey, kind), e)
}

// IsAnnotationNode reports whether e is an annotation of any kind
func IsAnnotationNode(e *Expr) bool {
	if !e.IsMData() {
		return false
	}
	_, ok := e.data.GetName(annotationKey)
	return ok
}

// IsAnnotation reports whether e is an annotation of the given kind
func IsAnnotation(e *Expr, kind name.Name) bool {
	if !e.IsMData() {
		return false
	}
	k, ok := e.data.GetName(annotationKey)
	return ok && k == kind
}

func AnnotationKind(e *Expr) name.Name {
	if !IsAnnotationNode(e) {
		Violation("AnnotationKind", "expected annotation, got %s", e.kind)
	}
	k, _ := e.data.GetName(annotationKey)
	return k
}

func AnnotationExpr(e *Expr) *Expr {
	if !IsAnnotationNode(e) {
		Violation("AnnotationExpr", "expected annotation, got %s", e.kind)
	}
	return e.inner
}
