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
	"math"

	"github.com/blinklabs-io/eqns/expr"
)

// MkEquationsResult packs items into a single node tagged with its size.
// The items are folded to the right: items[0] (items[1] (... items[n-1])).
func (m *Markers) MkEquationsResult(items []*expr.Expr) *expr.Expr {
	m.check("MkEquationsResult")
	if len(items) == 0 {
		expr.Violation("MkEquationsResult", "at least one item is required")
	}
	r := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		r = expr.App(items[i], r)
	}
	data := expr.KVMap{}.SetNat(m.equationsResultName, uint64(len(items)))
	return expr.MData(data, r)
}

func (m *Markers) IsEquationsResult(e *expr.Expr) bool {
	m.check("IsEquationsResult")
	if !e.IsMData() {
		return false
	}
	_, ok := e.MDataMap().GetNat(m.equationsResultName)
	return ok
}

func (m *Markers) ResultSize(e *expr.Expr) int {
	if !m.IsEquationsResult(e) {
		expr.Violation("ResultSize", "expected equations result, got %s", e)
	}
	n, _ := e.MDataMap().GetNat(m.equationsResultName)
	if n == 0 || n > math.MaxInt {
		expr.Violation("ResultSize", "invalid equations result size %d", n)
	}
	return int(n)
}

// ResultItems unpacks every item of an equations result. The size tag is
// not trusted for allocation; the chain is walked instead.
func (m *Markers) ResultItems(e *expr.Expr) []*expr.Expr {
	n := m.ResultSize(e)
	var ret []*expr.Expr
	r := e.MDataExpr()
	for range n - 1 {
		if !r.IsApp() {
			expr.Violation("ResultItems", "equations result holds fewer than %d items", n)
		}
		ret = append(ret, r.AppFn())
		r = r.AppArg()
	}
	return append(ret, r)
}

// ResultItem returns item i of an equations result. Callers that need
// every item should use ResultItems.
func (m *Markers) ResultItem(e *expr.Expr, i int) *expr.Expr {
	n := m.ResultSize(e)
	if i < 0 || i >= n {
		expr.Violation("ResultItem", "index %d out of range for result of size %d", i, n)
	}
	return m.ResultItems(e)[i]
}
