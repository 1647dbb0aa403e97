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
	"fmt"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Class identifies the kind of node to which a wildcard in a rule pattern can
// be bound.  The class of a wildcard is determined by the first one or two
// letters of its name.
type Class uint8

const (
	// ClassLiteral is a named constant (e.g. pi) which matches only a symbol
	// of the same name.
	ClassLiteral Class = iota
	// ClassAny matches any node ("n", or "_p").
	ClassAny
	// ClassConstant matches constant nodes ("c" or "cl").
	ClassConstant
	// ClassNonConstant matches anything other than a constant node ("v").
	ClassNonConstant
	// ClassSymbol matches symbol nodes ("vl").
	ClassSymbol
	// ClassNumeric matches a constant, or the negation of a constant ("cd").
	ClassNumeric
	// ClassNonNumeric matches anything not matched by ClassNumeric ("vd").
	ClassNonNumeric
	// ClassConstantExpr matches an expression built entirely from constants
	// ("ce").
	ClassConstantExpr
	// ClassNonConstantExpr matches anything not matched by ClassConstantExpr
	// ("ve").
	ClassNonConstantExpr
)

var classNames = [...]string{"literal", "any", "constant", "non-constant", "symbol", "numeric", "non-numeric",
	"constant expression", "non-constant expression"}

func (c Class) String() string {
	return classNames[c]
}

// Symbol names which denote named constants rather than wildcards.
var literalSymbols = map[string]bool{
	"true": true, "false": true, "e": true, "i": true, "Infinity": true, "LN2": true, "LN10": true,
	"LOG2E": true, "LOG10E": true, "NaN": true, "phi": true, "pi": true, "SQRT1_2": true, "SQRT2": true,
	"tau": true, "null": true, "undefined": true,
}

var wildcardPrefixes = map[string]Class{
	"n":  ClassAny,
	"_p": ClassAny,
	"c":  ClassConstant,
	"cl": ClassConstant,
	"v":  ClassNonConstant,
	"vl": ClassSymbol,
	"cd": ClassNumeric,
	"vd": ClassNonNumeric,
	"ce": ClassConstantExpr,
	"ve": ClassNonConstantExpr,
}

// ClassOf determines the class of a symbol appearing in a rule pattern.  A
// wildcard prefix consists of two characters when the second is a lowercase
// letter, and of one character otherwise.  Thus, "cl2" has prefix "cl" whilst
// "c2" has prefix "c".
func ClassOf(name string) (Class, error) {
	if literalSymbols[name] {
		return ClassLiteral, nil
	} else if name == "" {
		return 0, fmt.Errorf("%w: empty symbol", ErrInvalidWildcard)
	}
	//
	prefix := name[:1]
	//
	if len(name) > 1 && name[1] >= 'a' && name[1] <= 'z' {
		prefix = name[:2]
	}
	//
	if class, ok := wildcardPrefixes[prefix]; ok {
		return class, nil
	}
	//
	return 0, fmt.Errorf("%w: %s", ErrInvalidWildcard, name)
}

// Accepts determines whether a wildcard of this class can be bound to a given
// node.
func (c Class) Accepts(node ast.Node) bool {
	switch c {
	case ClassAny:
		return true
	case ClassConstant:
		return ast.IsConstant(node)
	case ClassNonConstant:
		return !ast.IsConstant(node)
	case ClassSymbol:
		return ast.IsSymbol(node)
	case ClassNumeric:
		return isNumeric(node)
	case ClassNonNumeric:
		return !isNumeric(node)
	case ClassConstantExpr:
		return isConstantExpression(node)
	case ClassNonConstantExpr:
		return !isConstantExpression(node)
	}
	// Literals are matched by name
	return false
}

// A numeric node is a constant, or the negation of a constant.
func isNumeric(node ast.Node) bool {
	if ast.IsUnaryMinus(node) {
		return ast.IsConstant(node.(*ast.Operator).Args[0])
	}
	//
	return ast.IsConstant(node)
}

// A constant expression is one whose value is determined purely by constants.
func isConstantExpression(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.Constant:
		return true
	case *ast.Operator, *ast.Function:
		args, _ := ast.Args(n)
		//
		for _, arg := range args {
			if !isConstantExpression(arg) {
				return false
			}
		}
		//
		return true
	case *ast.Parenthesis:
		return isConstantExpression(n.Content)
	}
	//
	return false
}
