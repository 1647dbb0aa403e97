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
	"github.com/consensys/go-algebra/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// NUMBER signals a decimal number, with optional fraction and exponent.
const NUMBER uint = 2

// IDENTIFIER signals a variable or function name.
const IDENTIFIER uint = 3

// STRING signals a double-quoted string literal.
const STRING uint = 4

// LBRACE signals "left brace"
const LBRACE uint = 5

// RBRACE signals "right brace"
const RBRACE uint = 6

// LSQUARE signals "left square bracket"
const LSQUARE uint = 7

// RSQUARE signals "right square bracket"
const RSQUARE uint = 8

// LCURLY signals "left curly brace"
const LCURLY uint = 9

// RCURLY signals "right curly brace"
const RCURLY uint = 10

// COMMA signals a comma separator.
const COMMA uint = 11

// COLON signals the colon separating keys from values in an object.
const COLON uint = 12

// ADD signals addition (or unary plus)
const ADD uint = 13

// SUB signals subtraction (or unary minus)
const SUB uint = 14

// MUL signals multiplication
const MUL uint = 15

// DIV signals division
const DIV uint = 16

// MOD signals modulus
const MOD uint = 17

// POW signals exponentiation
const POW uint = 18

// ADDITIVE captures the set of additive operators.
var ADDITIVE = []uint{ADD, SUB}

// MULTIPLICATIVE captures the set of multiplicative operators.
var MULTIPLICATIVE = []uint{MUL, DIV, MOD}

// IMPLICIT captures those tokens which trigger an implicit multiplication when
// they immediately follow an operand.
var IMPLICIT = []uint{NUMBER, IDENTIFIER, LBRACE}

// Maps operator tokens to the functions implementing them.
var binaryFunctions = map[uint]string{
	ADD: "add",
	SUB: "subtract",
	MUL: "multiply",
	DIV: "divide",
	MOD: "mod",
	POW: "pow",
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

var digits lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

var fraction lex.Scanner[rune] = lex.Sequence(lex.Unit('.'), digits)

var exponent lex.Scanner[rune] = lex.Sequence(
	lex.Or(lex.Unit('e'), lex.Unit('E')),
	lex.Or(lex.Sequence(lex.Or(lex.Unit('+'), lex.Unit('-')), digits), digits))

// Rule for describing numbers
var number lex.Scanner[rune] = lex.Then(lex.Or(lex.Then(digits, fraction), fraction), exponent)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.Then(identifierStart, identifierRest)

// Rule for describing string literals.  Escapes are not supported.
var stringLiteral lex.Scanner[rune] = func(items []rune) uint {
	if len(items) == 0 || items[0] != '"' {
		return 0
	}
	//
	for i := 1; i < len(items); i++ {
		if items[i] == '"' {
			return uint(i + 1)
		}
	}
	// unterminated
	return 0
}

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('%'), MOD),
	lex.Rule(lex.Unit('^'), POW),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(stringLiteral, STRING),
	lex.Rule(lex.Eof[rune](), END_OF),
}
