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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/ast"
)

func TestClassOf_00(t *testing.T) {
	checkClass(t, "n", ClassAny)
	checkClass(t, "n12", ClassAny)
	checkClass(t, "_p0", ClassAny)
	checkClass(t, "c", ClassConstant)
	checkClass(t, "c2", ClassConstant)
	checkClass(t, "cl", ClassConstant)
	checkClass(t, "v", ClassNonConstant)
	checkClass(t, "vl1", ClassSymbol)
	checkClass(t, "cd", ClassNumeric)
	checkClass(t, "vd", ClassNonNumeric)
	checkClass(t, "ce", ClassConstantExpr)
	checkClass(t, "ve", ClassNonConstantExpr)
	checkClass(t, "pi", ClassLiteral)
	checkClass(t, "e", ClassLiteral)
}

func TestClassOf_01(t *testing.T) {
	for _, name := range []string{"x", "y1", "ab", "", "N"} {
		_, err := ClassOf(name)
		assert.True(t, errors.Is(err, ErrInvalidWildcard), name)
	}
}

func TestAccepts_00(t *testing.T) {
	checkAccepts(t, ClassSymbol, "x", true)
	checkAccepts(t, ClassSymbol, "5", false)
	checkAccepts(t, ClassSymbol, "f(x)", false)
}

func TestAccepts_01(t *testing.T) {
	checkAccepts(t, ClassNumeric, "-3", true)
	checkAccepts(t, ClassNumeric, "3", true)
	checkAccepts(t, ClassNumeric, "x", false)
	checkAccepts(t, ClassNumeric, "-x", false)
	checkAccepts(t, ClassNonNumeric, "-x", true)
	checkAccepts(t, ClassNonNumeric, "-3", false)
}

func TestAccepts_02(t *testing.T) {
	checkAccepts(t, ClassConstant, "3", true)
	checkAccepts(t, ClassConstant, "-3", false)
	checkAccepts(t, ClassNonConstant, "-3", true)
	checkAccepts(t, ClassNonConstant, "3", false)
}

func TestAccepts_03(t *testing.T) {
	checkAccepts(t, ClassConstantExpr, "2 * (3 + f(4))", true)
	checkAccepts(t, ClassConstantExpr, "2 * x", false)
	checkAccepts(t, ClassNonConstantExpr, "2 * x", true)
}

func TestPattern_00(t *testing.T) {
	_, err := NewPattern(parse("n + x"))
	assert.True(t, errors.Is(err, ErrInvalidWildcard))
}

func TestMatch_00(t *testing.T) {
	checkMatches(t, "vl", "x", "vl=x;")
	checkMatches(t, "vl", "5")
}

func TestMatch_01(t *testing.T) {
	checkMatches(t, "cd", "-3", "cd=(- 3);")
	checkMatches(t, "cd", "x")
}

func TestMatch_02(t *testing.T) {
	// Commutative operators are split both ways around
	checkMatches(t, "n1 + n2", "x + y", "n1=x;n2=y;", "n1=y;n2=x;")
}

func TestMatch_03(t *testing.T) {
	checkMatches(t, "n1 - n2", "x - y", "n1=x;n2=y;")
	checkMatches(t, "n1 - n2", "x + y")
}

func TestMatch_04(t *testing.T) {
	// Wildcards must be bound consistently.  Both splits of the node match.
	checkMatches(t, "n + -n", "x + -x", "n=x;", "n=x;")
	checkMatches(t, "n + -n", "-x + x", "n=x;", "n=x;")
	checkMatches(t, "n + -n", "x + -y")
}

func TestMatch_05(t *testing.T) {
	checkMatches(t, "f()", "f()", "")
	checkMatches(t, "f()", "g()")
	checkMatches(t, "f(n)", "f()")
}

func TestMatch_06(t *testing.T) {
	checkMatches(t, "log(e)", "log(e)", "")
	checkMatches(t, "log(e)", "log(x)")
}

func TestMatch_07(t *testing.T) {
	checkMatches(t, "2 * n", "2 * x", "n=x;", "n=x;")
	checkMatches(t, "2 * n", "3 * x")
}

func TestMatch_08(t *testing.T) {
	// Flattened node, binary pattern
	node := Flatten(parse("x + y + z"), nil)
	pattern := mustPattern(t, "vl + n")
	matches, err := pattern.Match(node, nil)
	//
	require.NoError(t, err)
	assert.Equal(t, []string{"n=(+ y z);vl=x;", "n=(+ x z);vl=y;", "n=(+ x y);vl=z;"}, keys(matches))
}

func TestMatch_09(t *testing.T) {
	// Non-commutative split preserves order
	ctx := Context{"add": {Commutative: false}}
	node := Flatten(parse("x + y + z"), ctx)
	pattern := mustPattern(t, "n1 + n2")
	matches, err := pattern.Match(node, ctx)
	//
	require.NoError(t, err)
	assert.Equal(t, []string{"n1=x;n2=(+ y z);", "n1=(+ x y);n2=z;"}, keys(matches))
}

func TestMatch_10(t *testing.T) {
	pattern := mustPattern(t, "f(n1, 2, n3)")
	_, err := pattern.Match(parse("f(x, y, z)"), nil)
	//
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestMatch_11(t *testing.T) {
	pattern, err := NewPattern(ast.NewOperator("add", ast.NewSymbol("n1"), ast.NewSymbol("n2"), ast.NewSymbol("n3")))
	require.NoError(t, err)
	//
	_, err = pattern.Match(parse("x + y"), nil)
	assert.True(t, errors.Is(err, ErrNonBinaryAssociative))
}

func TestMatch_12(t *testing.T) {
	// Function arguments are matched in either order
	checkMatches(t, "f(v, c)", "f(2, x)", "c=2;v=x;")
	checkMatches(t, "f(v, c)", "g(2, x)")
}

func TestMergeMatch_00(t *testing.T) {
	x, y := ast.NewSymbol("x"), ast.NewSymbol("y")
	//
	m, ok := mergeMatch(Match{"a": x}, Match{"b": y})
	assert.True(t, ok)
	assert.Equal(t, "a=x;b=y;", m.Key())
	//
	m, ok = mergeMatch(Match{"a": x}, Match{"a": ast.NewSymbol("x")})
	assert.True(t, ok)
	assert.Equal(t, "a=x;", m.Key())
	//
	_, ok = mergeMatch(Match{"a": x}, Match{"a": y})
	assert.False(t, ok)
}

func TestMergeChildMatches_00(t *testing.T) {
	x, y := ast.NewSymbol("x"), ast.NewSymbol("y")
	//
	assert.Equal(t, []Match{{}}, mergeChildMatches(nil))
	//
	res := mergeChildMatches([][]Match{
		{{"a": x}, {"a": y}},
		{{"b": x}, {"a": x}},
	})
	//
	assert.Equal(t, []string{"a=x;b=x;", "a=x;", "a=y;b=x;"}, keys(res))
}

func TestMergeChildMatches_01(t *testing.T) {
	x := ast.NewSymbol("x")
	// Duplicates eliminated
	res := mergeChildMatches([][]Match{{{"a": x}, {"a": x}}, {{}}})
	//
	assert.Equal(t, []string{"a=x;"}, keys(res))
}

// ==================================================================
// Framework
// ==================================================================

func checkClass(t *testing.T, name string, expected Class) {
	class, err := ClassOf(name)
	//
	require.NoError(t, err, name)
	assert.Equal(t, expected, class, name)
}

func checkAccepts(t *testing.T, class Class, input string, expected bool) {
	assert.Equal(t, expected, class.Accepts(parse(input)), "%s accepts %s", class, input)
}

func checkMatches(t *testing.T, pattern string, input string, expected ...string) {
	matches, err := mustPattern(t, pattern).Match(parse(input), nil)
	//
	require.NoError(t, err)
	//
	if len(expected) == 0 {
		assert.Empty(t, matches, "%s against %s", pattern, input)
	} else {
		assert.Equal(t, expected, keys(matches), "%s against %s", pattern, input)
	}
}

func mustPattern(t *testing.T, input string) *Pattern {
	pattern, err := NewPattern(parse(input))
	require.NoError(t, err)
	//
	return pattern
}

func keys(matches []Match) []string {
	res := make([]string, len(matches))
	//
	for i, m := range matches {
		res[i] = m.Key()
	}
	//
	return res
}
