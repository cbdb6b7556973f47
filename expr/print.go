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
	"strconv"
	"strings"
)

// String renders e as an s-expression. It is meant for diagnostics only.
func (e *Expr) String() string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e *Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch e.kind {
	case KindBVar:
		sb.WriteString("#")
		sb.WriteString(strconv.FormatUint(e.value, 10))
	case KindSort:
		if e.value == 0 {
			sb.WriteString("Prop")
		} else {
			sb.WriteString("Sort ")
			sb.WriteString(strconv.FormatUint(e.value, 10))
		}
	case KindConst:
		sb.WriteString(e.name.String())
	case KindApp:
		// Flatten the spine so f a b prints as (f a b)
		var args []*Expr
		head := e
		for head.kind == KindApp {
			args = append(args, head.arg)
			head = head.fn
		}
		sb.WriteString("(")
		writeExpr(sb, head)
		for i := len(args) - 1; i >= 0; i-- {
			sb.WriteString(" ")
			writeExpr(sb, args[i])
		}
		sb.WriteString(")")
	case KindLambda, KindPi:
		if e.kind == KindLambda {
			sb.WriteString("(fun ")
		} else {
			sb.WriteString("(Pi ")
		}
		sb.WriteString(e.name.String())
		sb.WriteString(" : ")
		writeExpr(sb, e.binderType)
		sb.WriteString(", ")
		writeExpr(sb, e.body)
		sb.WriteString(")")
	case KindMData:
		sb.WriteString("[mdata ")
		sb.WriteString(e.data.String())
		sb.WriteString(" ")
		writeExpr(sb, e.inner)
		sb.WriteString("]")
	case KindMacro:
		sb.WriteString("[")
		sb.WriteString(e.macro.Name().String())
		for _, arg := range e.args {
			sb.WriteString(" ")
			writeExpr(sb, arg)
		}
		sb.WriteString("]")
	}
}
