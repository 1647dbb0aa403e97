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
package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/util/source"
)

func TestParse_00(t *testing.T) {
	checkParse(t, "x", "x")
}

func TestParse_01(t *testing.T) {
	checkParse(t, "1 + 2 * 3", "(+ 1 (* 2 3))")
}

func TestParse_02(t *testing.T) {
	checkParse(t, "1 - 2 - 3", "(- (- 1 2) 3)")
}

func TestParse_03(t *testing.T) {
	checkParse(t, "x ^ y ^ z", "(^ x (^ y z))")
}

func TestParse_04(t *testing.T) {
	checkParse(t, "-x ^ 2", "(- (^ x 2))")
}

func TestParse_05(t *testing.T) {
	checkParse(t, "n*n1^-n2", "(* n (^ n1 (- n2)))")
}

func TestParse_06(t *testing.T) {
	checkParse(t, "-n1/n2", "(/ (- n1) n2)")
}

func TestParse_07(t *testing.T) {
	checkParse(t, "2x + 3 (y)", "(+ (*? 2 x) (*? 3 (#paren y)))")
}

func TestParse_08(t *testing.T) {
	checkParse(t, "f(x, g(), 1.5e1)", "(f x (g) 15)")
}

func TestParse_09(t *testing.T) {
	checkParse(t, "[1, .5][2, 3]", "(#index [1 0.5] 2 3)")
}

func TestParse_10(t *testing.T) {
	checkParse(t, `{a: 1, "b c": true}`, `(#object a 1 "b c" true)`)
}

func TestParse_11(t *testing.T) {
	checkParse(t, `concat("a b", x % 2)`, `(concat (#string "a b") (% x 2))`)
}

func TestParse_12(t *testing.T) {
	checkParse(t, "+x - --y", "(- (+ x) (- (- y)))")
}

func TestParse_13(t *testing.T) {
	node, err := Parse("0.1")
	require.NoError(t, err)
	// parsed exactly
	assert.True(t, ast.ValueEqual(node.(*ast.Constant).Value, mustRational("1/10")))
}

func TestParse_Invalid_00(t *testing.T) {
	checkInvalid(t, "", "unexpected end of expression", "")
}

func TestParse_Invalid_01(t *testing.T) {
	checkInvalid(t, "x + ", "unexpected end of expression", "")
}

func TestParse_Invalid_02(t *testing.T) {
	checkInvalid(t, "(x + 1", "expected ')'", "")
}

func TestParse_Invalid_03(t *testing.T) {
	checkInvalid(t, "x $ y", "unknown text encountered", "$ y")
}

func TestParse_Invalid_04(t *testing.T) {
	checkInvalid(t, "x )", "unexpected token", ")")
}

func TestParse_Invalid_05(t *testing.T) {
	checkInvalid(t, "f(x y", "expected ',' or closing bracket", "")
}

func TestParse_Invalid_06(t *testing.T) {
	checkInvalid(t, "{a: 1, a: 2}", "duplicate property", "a")
}

func TestParse_Invalid_07(t *testing.T) {
	checkInvalid(t, "* x", "unknown expression", "*")
}

func TestParse_Depth(t *testing.T) {
	text := strings.Repeat("(", 20) + "x" + strings.Repeat(")", 20)
	// Sufficient depth
	_, err := ParseFile(source.NewSourceFile("test", []byte(text)), 100)
	assert.Nil(t, err)
	// Insufficient depth
	_, err = ParseFile(source.NewSourceFile("test", []byte(text)), 10)
	require.NotNil(t, err)
	assert.Equal(t, "expression nested too deeply", err.Message())
}

func TestParseLisp_00(t *testing.T) {
	checkLisp(t, "(+ x (* 2 y))", "x + 2 * y")
}

func TestParseLisp_01(t *testing.T) {
	checkLisp(t, "(+ a b c)", "a + b + c")
}

func TestParseLisp_02(t *testing.T) {
	checkLisp(t, "(- (^ x -1))", "-x ^ (-1)")
}

func TestParseLisp_03(t *testing.T) {
	checkLisp(t, "(f [1 2] (#string \"s t\") (#paren (*? 2 x)))", `f([1, 2], "s t", (2 x))`)
}

func TestParseLisp_04(t *testing.T) {
	checkLisp(t, "(#object k (#index a 1))", `{"k": a[1]}`)
}

func TestParseLisp_RoundTrip(t *testing.T) {
	for _, text := range []string{"2 x + y ^ (z - 1)", "f(-x, [1, 2], {a: 3})", `g("s") % h()`} {
		node := MustParse(text)
		back, err := ParseLisp(ast.Lisp(node).String(true))
		//
		require.NoError(t, err, text)
		assert.True(t, ast.Equal(node, back), text)
	}
}

func TestParseLisp_Invalid_00(t *testing.T) {
	checkLispInvalid(t, "()", "empty list")
}

func TestParseLisp_Invalid_01(t *testing.T) {
	checkLispInvalid(t, "(/ x)", "incorrect number of operands")
}

func TestParseLisp_Invalid_02(t *testing.T) {
	checkLispInvalid(t, "((f) x)", "expected operator or function name")
}

func TestParseLisp_Invalid_03(t *testing.T) {
	checkLispInvalid(t, "(#object a)", "expected key/value pairs")
}

// ==================================================================
// Framework
// ==================================================================

func checkParse(t *testing.T, input string, expected string) {
	node, err := Parse(input)
	//
	require.NoError(t, err, input)
	assert.Equal(t, expected, ast.Lisp(node).String(true))
}

func checkInvalid(t *testing.T, input string, msg string, text string) {
	var serr *source.SyntaxError
	//
	_, err := Parse(input)
	require.Error(t, err, input)
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, msg, serr.Message())
	//
	span := serr.Span()
	assert.Equal(t, text, serr.SourceFile().Text(span))
}

func checkLisp(t *testing.T, input string, expected string) {
	node, err := ParseLisp(input)
	//
	require.NoError(t, err, input)
	assert.Equal(t, expected, node.String())
}

func checkLispInvalid(t *testing.T, input string, msg string) {
	var serr *source.SyntaxError
	//
	_, err := ParseLisp(input)
	require.Error(t, err, input)
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, msg, serr.Message())
}

func mustRational(text string) ast.Value {
	node, err := ParseLisp(text)
	if err != nil {
		panic(err)
	}
	//
	return node.(*ast.Constant).Value
}
