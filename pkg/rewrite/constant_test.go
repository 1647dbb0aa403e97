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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/ast"
)

func TestSimplifyConstant_00(t *testing.T) {
	checkConstant(t, "2 + 3 * 4", "14")
	checkConstant(t, "2 - 5", "-3")
	checkConstant(t, "-(2)", "-2")
}

func TestSimplifyConstant_01(t *testing.T) {
	// Constants are collected from commutative operators
	checkConstant(t, "x + 2 + 3", "5 + x")
	checkConstant(t, "2 * x * 3", "6 * x")
	checkConstant(t, "2 * x", "2 * x")
}

func TestSimplifyConstant_02(t *testing.T) {
	// But not from other operators
	checkConstant(t, "x - 2 - 3", "x - 2 - 3")
}

func TestSimplifyConstant_03(t *testing.T) {
	checkConstant(t, "1 / 3", "1 / 3")
	checkConstant(t, "0.5", "1 / 2")
	checkConstant(t, "0.1 + 0.2", "3 / 10")
	checkConstant(t, "1 / 3 - 1", "-2 / 3")
	checkConstant(t, "x ^ (2 ^ -1)", "x ^ (1 / 2)")
}

func TestSimplifyConstant_04(t *testing.T) {
	opts := DefaultOptions()
	opts.ExactFractions = false
	//
	checkTransform(t, SimplifyConstant, opts, parse("1 / 3"), "0.3333333333333333")
	checkTransform(t, SimplifyConstant, opts, parse("3 / 4 * x"), "0.75 * x")
}

func TestSimplifyConstant_05(t *testing.T) {
	opts := DefaultOptions()
	opts.FractionsLimit = 10
	//
	checkTransform(t, SimplifyConstant, opts, parse("1 / 20"), "0.05")
	checkTransform(t, SimplifyConstant, opts, parse("1 / 5"), "1 / 5")
}

func TestSimplifyConstant_06(t *testing.T) {
	checkConstant(t, "sqrt(4)", "2")
	checkConstant(t, "sqrt(2)", "1.4142135623730951")
	checkConstant(t, "f(2 + 3)", "f(5)")
}

func TestSimplifyConstant_07(t *testing.T) {
	// Evaluation failures leave nodes in place
	checkConstant(t, "1 / 0", "1 / 0")
	checkConstant(t, "0 ^ -1 + x", "0 ^ (-1) + x")
}

func TestSimplifyConstant_08(t *testing.T) {
	checkConstant(t, "[1 + 2, x]", "[3, x]")
	checkConstant(t, "a[1 + 1]", "a[2]")
}

func TestSimplifyConstant_09(t *testing.T) {
	node := ast.NewConstant(ast.Float(0.25))
	checkTransform(t, SimplifyConstant, DefaultOptions(), node, "1 / 4")
}

func TestEvaluate_00(t *testing.T) {
	checkEvaluate(t, "add", "6", rat(1, 1), rat(2, 1), rat(3, 1))
	checkEvaluate(t, "multiply", "24", rat(2, 1), rat(3, 1), rat(4, 1))
	checkEvaluate(t, "subtract", "-1", rat(2, 1), rat(3, 1))
	checkEvaluate(t, "divide", "0.5", rat(1, 1), rat(2, 1))
}

func TestEvaluate_01(t *testing.T) {
	checkEvaluate(t, "pow", "1024", rat(2, 1), rat(10, 1))
	checkEvaluate(t, "pow", "0.25", rat(2, 1), rat(-2, 1))
	checkEvaluate(t, "pow", "2", rat(4, 1), rat(1, 2))
	checkEvaluate(t, "pow", "1", rat(0, 1), rat(0, 1))
}

func TestEvaluate_02(t *testing.T) {
	checkEvaluate(t, "mod", "2", rat(-7, 1), rat(3, 1))
	checkEvaluate(t, "mod", "-2", rat(7, 1), rat(-3, 1))
	checkEvaluate(t, "mod", "0.5", rat(5, 2), rat(1, 1))
}

func TestEvaluate_03(t *testing.T) {
	checkEvaluate(t, "floor", "-3", rat(-5, 2))
	checkEvaluate(t, "ceil", "3", rat(5, 2))
	checkEvaluate(t, "round", "-3", rat(-5, 2))
	checkEvaluate(t, "round", "2", rat(7, 4))
	checkEvaluate(t, "abs", "2.5", rat(-5, 2))
	checkEvaluate(t, "sqrt", "1.5", rat(9, 4))
	checkEvaluate(t, "unaryMinus", "-2", rat(2, 1))
	checkEvaluate(t, "log", "0", rat(1, 1))
}

func TestEvaluate_04(t *testing.T) {
	checkEvaluate(t, "add", "2.5", ast.Float(2), rat(1, 2))
	checkEvaluate(t, "multiply", "0.75", ast.Float(1.5), ast.Float(0.5))
}

func TestEvaluate_05(t *testing.T) {
	checkNotEvaluated(t, "divide", rat(1, 1), rat(0, 1))
	checkNotEvaluated(t, "mod", rat(1, 1), rat(0, 1))
	checkNotEvaluated(t, "pow", rat(0, 1), rat(-1, 1))
	checkNotEvaluated(t, "pow", rat(-8, 1), rat(1, 3))
	checkNotEvaluated(t, "sqrt", rat(-1, 1))
	checkNotEvaluated(t, "log", rat(0, 1))
}

func TestEvaluate_06(t *testing.T) {
	checkNotEvaluated(t, "unknown", rat(1, 1))
	checkNotEvaluated(t, "subtract", rat(1, 1))
	checkNotEvaluated(t, "add")
	checkNotEvaluated(t, "add", rat(1, 1), ast.String("x"))
	checkNotEvaluated(t, "unaryMinus", ast.Boolean(true))
}

func TestExactFraction_00(t *testing.T) {
	checkExactFraction(t, 0.1, 10000, "1/10")
	checkExactFraction(t, -0.5, 10000, "-1/2")
	checkExactFraction(t, 3, 10000, "3/1")
	checkExactFraction(t, 1.0/3, 10000, "1/3")
	checkExactFraction(t, 1.0/3, 2, "")
	checkExactFraction(t, 0.1234567, 10000, "")
}

// ==================================================================
// Framework
// ==================================================================

func checkConstant(t *testing.T, input string, expected string) {
	checkTransform(t, SimplifyConstant, DefaultOptions(), parse(input), expected)
}

func checkEvaluate(t *testing.T, fn string, expected string, args ...ast.Value) {
	res, ok := evaluate(fn, args)
	//
	require.True(t, ok, fn)
	assert.Equal(t, expected, res.String(), fn)
}

func checkNotEvaluated(t *testing.T, fn string, args ...ast.Value) {
	_, ok := evaluate(fn, args)
	assert.False(t, ok, fn)
}

func checkExactFraction(t *testing.T, f float64, limit int64, expected string) {
	r, ok := exactFraction(f, limit)
	//
	if expected == "" {
		assert.False(t, ok)
	} else {
		require.True(t, ok)
		assert.Equal(t, expected, r.String())
	}
}

func rat(num int64, den int64) *ast.Rational {
	return ast.NewRational(big.NewRat(num, den))
}
