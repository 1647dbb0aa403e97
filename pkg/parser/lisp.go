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
	"math/big"
	"strings"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/util/source"
	"github.com/consensys/go-algebra/pkg/util/source/sexp"
)

// Maps operator symbols to the functions implementing their binary forms.
var lispBinary = map[string]string{
	"+": "add",
	"-": "subtract",
	"*": "multiply",
	"/": "divide",
	"%": "mod",
	"^": "pow",
}

// Maps operator symbols to the functions implementing their unary forms.
var lispUnary = map[string]string{
	"+": "unaryPlus",
	"-": "unaryMinus",
}

// ParseLisp parses an expression tree written as an S-Expression, such as
// "(+ x (* 2 y))".  This is the inverse of ast.Lisp.  Any error returned is a
// *source.SyntaxError identifying the offending text.
func ParseLisp(input string) (ast.Node, error) {
	srcfile := source.NewSourceFile("lisp", []byte(input))
	//
	term, srcmap, err := sexp.Parse(srcfile)
	if err != nil {
		return nil, err
	}
	//
	node, err := (&lispTranslator{srcmap}).translate(term)
	if err != nil {
		return nil, err
	}
	//
	return node, nil
}

type lispTranslator struct {
	srcmap *source.Map[sexp.SExp]
}

func (p *lispTranslator) translate(term sexp.SExp) (ast.Node, *source.SyntaxError) {
	switch t := term.(type) {
	case *sexp.Symbol:
		return translateSymbol(t.Value), nil
	case *sexp.Array:
		items, err := p.translateAll(t.Elements)
		if err != nil {
			return nil, err
		}
		//
		return ast.NewArray(items...), nil
	case *sexp.List:
		return p.translateList(t)
	}
	//
	panic("unreachable")
}

func (p *lispTranslator) translateList(list *sexp.List) (ast.Node, *source.SyntaxError) {
	if list.Len() == 0 {
		return nil, p.srcmap.SyntaxError(list, "empty list")
	}
	//
	head := list.Head()
	if head == "" {
		return nil, p.srcmap.SyntaxError(list, "expected operator or function name")
	}
	// Special forms
	switch head {
	case ast.LispString:
		if list.Len() != 2 || list.Get(1).AsSymbol() == nil {
			return nil, p.srcmap.SyntaxError(list, "expected exactly one string")
		}
		//
		return ast.NewConstant(ast.String(list.Get(1).AsSymbol().Value)), nil
	case ast.LispObject:
		return p.translateObject(list)
	}
	//
	args, err := p.translateAll(list.Elements[1:])
	if err != nil {
		return nil, err
	}
	//
	switch head {
	case ast.LispParen:
		if len(args) != 1 {
			return nil, p.srcmap.SyntaxError(list, "expected exactly one argument")
		}
		//
		return ast.NewParenthesis(args[0]), nil
	case ast.LispIndex:
		if len(args) == 0 {
			return nil, p.srcmap.SyntaxError(list, "missing object")
		}
		//
		return ast.NewAccessor(args[0], args[1:]...), nil
	case "*?":
		if len(args) != 2 {
			return nil, p.srcmap.SyntaxError(list, "expected exactly two arguments")
		}
		//
		return ast.NewImplicit(args[0], args[1]), nil
	}
	//
	if fn, ok := lispUnary[head]; ok && len(args) == 1 {
		return ast.NewOperator(fn, args...), nil
	} else if fn, ok := lispBinary[head]; ok && len(args) >= 2 {
		return ast.NewOperator(fn, args...), nil
	} else if ok {
		return nil, p.srcmap.SyntaxError(list, "incorrect number of operands")
	}
	//
	return ast.NewFunction(head, args...), nil
}

func (p *lispTranslator) translateObject(list *sexp.List) (ast.Node, *source.SyntaxError) {
	var (
		keys   []string
		values []ast.Node
	)
	//
	if list.Len()%2 != 1 {
		return nil, p.srcmap.SyntaxError(list, "expected key/value pairs")
	}
	//
	for i := 1; i < list.Len(); i += 2 {
		key := list.Get(i).AsSymbol()
		if key == nil {
			return nil, p.srcmap.SyntaxError(list.Get(i), "expected property name")
		}
		//
		value, err := p.translate(list.Get(i + 1))
		if err != nil {
			return nil, err
		}
		//
		keys = append(keys, key.Value)
		values = append(values, value)
	}
	//
	return ast.NewObject(keys, values), nil
}

func (p *lispTranslator) translateAll(terms []sexp.SExp) ([]ast.Node, *source.SyntaxError) {
	nodes := make([]ast.Node, len(terms))
	//
	for i, term := range terms {
		node, err := p.translate(term)
		if err != nil {
			return nil, err
		}
		//
		nodes[i] = node
	}
	//
	return nodes, nil
}

// Translate a symbol into either a constant or a symbol node.
func translateSymbol(value string) ast.Node {
	var number big.Rat
	//
	switch {
	case value == "true" || value == "false":
		return ast.NewConstant(ast.Boolean(value == "true"))
	case isNumeric(value):
		if _, ok := number.SetString(value); ok {
			return ast.NewConstant(ast.NewRational(&number))
		}
	}
	//
	return ast.NewSymbol(value)
}

// Check whether a symbol looks like a (possibly negative) decimal number.
func isNumeric(value string) bool {
	value = strings.TrimPrefix(value, "-")
	//
	return value != "" && (value[0] == '.' || (value[0] >= '0' && value[0] <= '9'))
}
