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
package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-algebra/pkg/util/source"
)

func TestSExp_00(t *testing.T) {
	checkRoundTrip(t, "x", "x")
}

func TestSExp_01(t *testing.T) {
	checkRoundTrip(t, "()", "()")
}

func TestSExp_02(t *testing.T) {
	checkRoundTrip(t, "(+ x  (* 2 y))", "(+ x (* 2 y))")
}

func TestSExp_03(t *testing.T) {
	checkRoundTrip(t, "[1 2\n 3]", "[1 2 3]")
}

func TestSExp_04(t *testing.T) {
	checkRoundTrip(t, "; comment\n(f \"a b\") ; trailing", "(f \"a b\")")
}

func TestSExp_Invalid_00(t *testing.T) {
	checkInvalid(t, "(", "unexpected end-of-file")
}

func TestSExp_Invalid_01(t *testing.T) {
	checkInvalid(t, ")", "unexpected end-of-list")
}

func TestSExp_Invalid_02(t *testing.T) {
	checkInvalid(t, "(f x))", "unexpected remainder")
}

func TestSExp_Invalid_03(t *testing.T) {
	checkInvalid(t, "\"abc", "unterminated string")
}

func TestSExp_Invalid_04(t *testing.T) {
	checkInvalid(t, "  ", "unexpected end-of-file")
}

func TestSExp_ParseAll(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("x (y) [z]"))
	terms, srcmap, err := ParseAll(srcfile)
	//
	require.Nil(t, err)
	require.Len(t, terms, 3)
	assert.NotNil(t, terms[0].AsSymbol())
	assert.NotNil(t, terms[1].AsList())
	assert.NotNil(t, terms[2].AsArray())
	// Check source mapping
	span := srcmap.Get(terms[1])
	assert.Equal(t, "(y)", srcfile.Text(span))
}

func TestSExp_Format(t *testing.T) {
	list := NewList(NewSymbol("add"),
		NewList(NewSymbol("multiply"), NewSymbol("2"), NewSymbol("x")),
		NewSymbol("y"))
	// Wide enough to fit everything
	assert.Equal(t, "(add (multiply 2 x) y)", NewFormatter(80).Format(list))
	// Too narrow, forcing a split
	assert.Equal(t, "(add\n  (multiply 2 x)\n  y)", NewFormatter(16).Format(list))
}

// ==================================================================
// Framework
// ==================================================================

func checkRoundTrip(t *testing.T, input string, expected string) {
	term, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	require.Nil(t, err, "unexpected error")
	assert.Equal(t, expected, term.String(true))
}

func checkInvalid(t *testing.T, input string, msg string) {
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	require.NotNil(t, err, "expected error")
	assert.Equal(t, msg, err.Message())
}
