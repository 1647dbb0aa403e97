// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package rewrite

import (
	"sync"
)

var (
	defaultRuleSet     RuleSet
	defaultRuleSetOnce sync.Once
)

// Context fragments used by the default rules.
var (
	commutativeMultiply    = Context{"multiply": {Commutative: true}}
	nonCommutativeMultiply = Context{"multiply": {Commutative: false}}
	nonCommutativeAdd      = Context{"add": {Commutative: false}}
)

// DefaultRules returns the default rules used for simplification (in their
// uncompiled form).  These first normalise an expression into a canonical form
// built from addition, multiplication, powers and negative constants, then
// collect like terms, then fold constants and, finally, convert back into a
// more readable form (e.g. "x * y ^ -1" becomes "x / y").
func DefaultRules() []any {
	return []any{
		SimplifyCore,
		"log(e) -> 1",
		// Subtraction into addition of negation
		"n-n1 -> n+-n1",
		// Negation into multiplication by -1
		RuleObject{S: "-(cl*v) -> v * (-cl)", Assuming: commutativeMultiply},
		RuleObject{S: "-(cl*v) -> (-cl) * v", Assuming: nonCommutativeMultiply},
		RuleObject{S: "-(v*cl) -> v * (-cl)", Assuming: nonCommutativeMultiply},
		"-(n1/n2) -> -n1/n2",
		"-v -> v * (-1)",
		RuleObject{L: "(n1 + n2)*(-1)", R: "n1*(-1) + n2*(-1)", Repeat: true},
		// Division into multiplication by inverse
		"n/n1^n2 -> n*n1^-n2",
		"n/n1 -> n*n1^-1",
		// Powers
		"(n ^ n1) ^ n2 -> n ^ (n1 * n2)",
		"n*n -> n^2",
		"n * n^n1 -> n^(n1+1)",
		"n^n1 * n^n2 -> n^(n1+n2)",
		// Like terms
		"n+n -> 2*n",
		"n+-n -> 0",
		"v*n + v -> v*(n+1)",
		"n3*n1 + n3*n2 -> n3*(n1+n2)",
		"n*v + v -> (n+1)*v",
		"n1*n3 + n2*n3 -> (n1+n2)*n3",
		SimplifyConstant,
		// Back into a readable form
		"(-n)*n1 -> -(n*n1)",
		RuleObject{L: "c+v", R: "v+c", ImposeContext: nonCommutativeAdd},
		RuleObject{L: "v*c", R: "c*v", ImposeContext: nonCommutativeMultiply},
		"n+-n1 -> n-n1",
		"n*(n1^-1) -> n/n1",
		"n*n1^-n2 -> n/n1^n2",
		"n1^-1 -> 1/n1",
		"n*(n1/n2) -> (n*n1)/n2",
		"n-(n1+n2) -> n-n1-n2",
		"1*n -> n",
	}
}

// DefaultRuleSet returns the compiled default rules.  These are compiled once,
// and shared thereafter.
func DefaultRuleSet() RuleSet {
	defaultRuleSetOnce.Do(func() {
		defaultRuleSet = MustCompile(DefaultRules()...)
	})
	//
	return defaultRuleSet
}
