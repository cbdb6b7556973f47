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

package bench

import (
	"os"
	"strconv"
	"testing"

	"github.com/blinklabs-io/eqns/expr"
)

// Fixtures for allocation regression tests, built once so that setup
// allocations are not measured
var (
	mutualFixture = MustLoadBundleFixture("mutual")
	wideFixture   = MustLoadBundleFixture("wide")
)

// getThresholdMultiplier returns the allocation threshold multiplier from
// environment. Default is 1.0 (no adjustment). Set
// EQNS_ALLOC_THRESHOLD_MULTIPLIER to override.
func getThresholdMultiplier() float64 {
	if v := os.Getenv("EQNS_ALLOC_THRESHOLD_MULTIPLIER"); v != "" {
		if m, err := strconv.ParseFloat(v, 64); err == nil && m > 0 {
			return m
		}
	}
	return 1.0
}

func encodeOnce() any {
	data, _ := expr.EncodeExpr(mutualFixture.Expr)
	return data
}

func decodeOnce() any {
	e, _ := expr.DecodeExpr(mutualFixture.Cbor, mutualFixture.Registry)
	return e
}

func digestOnce() any {
	d, _ := expr.ComputeDigest(wideFixture.Expr)
	return d
}

func equationListOnce() any {
	return wideFixture.Markers.ToEquationList(wideFixture.Expr)
}

// TestAllocationRegression tests that key paths don't exceed allocation limits.
// The limits are ceilings meant to catch order of magnitude regressions.
//
// To adjust thresholds temporarily (e.g., during optimization work):
//
//	EQNS_ALLOC_THRESHOLD_MULTIPLIER=1.5 go test
//
// -run=TestAllocationRegression ./internal/bench/...
func TestAllocationRegression(t *testing.T) {
	multiplier := getThresholdMultiplier()

	tests := []struct {
		name      string
		fn        func() any
		maxAllocs int64
	}{
		{"BundleEncode", encodeOnce, 4000},
		{"BundleDecode", decodeOnce, 8000},
		{"BundleDigest", digestOnce, 20000},
		// Copies of the child list only
		{"EquationList", equationListOnce, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Run the function once to warm up (cache effects, lazy init)
			_ = tc.fn()

			allocs := testing.AllocsPerRun(100, func() {
				_ = tc.fn()
			})

			adjustedLimit := float64(tc.maxAllocs) * multiplier
			if allocs > adjustedLimit {
				t.Errorf(
					"%s: %.0f allocs > %.0f limit (base: %d, multiplier: %.2f)",
					tc.name,
					allocs,
					adjustedLimit,
					tc.maxAllocs,
					multiplier,
				)
			} else {
				t.Logf("%s: %.0f allocs (limit: %.0f)", tc.name, allocs, adjustedLimit)
			}
		})
	}
}

// TestAllocationBaselines reports the actual allocation counts for each
// operation. This is useful for establishing new limits.
func TestAllocationBaselines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping baseline test in short mode")
	}

	tests := []struct {
		name string
		fn   func() any
	}{
		{"BundleEncode", encodeOnce},
		{"BundleDecode", decodeOnce},
		{"BundleDigest", digestOnce},
		{"EquationList", equationListOnce},
	}

	t.Log("Allocation baselines (1000 iterations):")
	for _, tc := range tests {
		_ = tc.fn()

		allocs := testing.AllocsPerRun(1000, func() {
			_ = tc.fn()
		})

		t.Logf("  %s: %.2f allocs/op", tc.name, allocs)
	}
}
