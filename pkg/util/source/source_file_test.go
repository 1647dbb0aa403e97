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
package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceFile_00(t *testing.T) {
	checkLine(t, "x + y", 2, "x + y", 1, 0)
}

func TestSourceFile_01(t *testing.T) {
	checkLine(t, "a\nbc\nd", 3, "bc", 2, 2)
	checkLine(t, "a\nbc\nd", 6, "d", 3, 5)
}

func TestSourceFile_02(t *testing.T) {
	// Offsets at the end belong to the last line
	checkLine(t, "a\nbc", 4, "bc", 2, 2)
	checkLine(t, "a\n", 2, "", 2, 2)
	// A newline belongs to the line it ends
	checkLine(t, "a\nbc", 1, "a", 1, 0)
}

func TestSyntaxError_00(t *testing.T) {
	srcfile := NewSourceFile("expr", []byte("2 * ) + x"))
	err := srcfile.SyntaxError(NewSpan(4, 5), "unexpected token")
	//
	assert.Equal(t, "expr:4:5: unexpected token", err.Error())
	assert.Equal(t, "2 * ) + x\n    ^", err.Highlight())
}

func TestSyntaxError_01(t *testing.T) {
	srcfile := NewSourceFile("rules", []byte("n + n\nn + ) -> 2*n"))
	err := srcfile.SyntaxError(NewSpan(10, 16), "unexpected token")
	line := err.FirstEnclosingLine()
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "n + ) -> 2*n\n    ^^^^^^", err.Highlight())
}

func TestSyntaxError_02(t *testing.T) {
	// Empty spans still highlight one character
	srcfile := NewSourceFile("expr", []byte("x +"))
	err := srcfile.SyntaxError(NewSpan(3, 3), "unexpected end of input")
	//
	assert.Equal(t, "x +\n   ^", err.Highlight())
}

// ==================================================================
// Framework
// ==================================================================

func checkLine(t *testing.T, text string, offset int, expected string, number int, start int) {
	line := NewSourceFile("test", []byte(text)).lineAt(offset)
	//
	assert.Equal(t, expected, line.String())
	assert.Equal(t, number, line.Number())
	assert.Equal(t, start, line.Start())
}
