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

import "fmt"

type Kind uint8

const (
	KindBVar Kind = iota
	KindSort
	KindConst
	KindApp
	KindLambda
	KindPi
	KindMData
	KindMacro
)

var kindNames = map[Kind]string{
	KindBVar:   "bvar",
	KindSort:   "sort",
	KindConst:  "const",
	KindApp:    "app",
	KindLambda: "lambda",
	KindPi:     "pi",
	KindMData:  "mdata",
	KindMacro:  "macro",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) valid() bool {
	return k <= KindMacro
}
