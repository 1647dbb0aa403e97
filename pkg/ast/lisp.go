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
package ast

import (
	"github.com/consensys/go-algebra/pkg/util/source/sexp"
)

// Heads used in the S-Expression rendering of nodes which are neither
// operators nor function calls.
const (
	// LispString marks a string constant, e.g. (#string "abc").
	LispString = "#string"
	// LispParen marks a parenthesis node, e.g. (#paren x).
	LispParen = "#paren"
	// LispIndex marks an accessor, e.g. (#index a 1 2) for a[1, 2].
	LispIndex = "#index"
	// LispObject marks an object, e.g. (#object a 1 b 2) for {"a": 1, "b": 2}.
	LispObject = "#object"
)

// Lisp converts a tree into an S-Expression.  Operators are written with their
// operator symbol at the head, where the number of arguments distinguishes
// unary from binary operators (e.g. (- x) versus (- x y)).  Implicit
// multiplications are written with the head "*?" to retain them.  Function
// calls are written with their name at the head.  Arrays are written as
// S-Expression arrays.
func Lisp(node Node) sexp.SExp {
	switch n := node.(type) {
	case *Constant:
		if s, ok := n.Value.(String); ok {
			return sexp.NewList(sexp.NewSymbol(LispString), sexp.NewSymbol(string(s)))
		}
		//
		return sexp.NewSymbol(n.Value.String())
	case *Symbol:
		return sexp.NewSymbol(n.Name)
	case *Operator:
		head := n.Op
		if n.Implicit {
			head = "*?"
		}
		//
		return lispList(head, n.Args...)
	case *Function:
		return lispList(n.Name, n.Args...)
	case *Parenthesis:
		return lispList(LispParen, n.Content)
	case *Array:
		return sexp.NewArray(lispAll(n.Items)...)
	case *Accessor:
		return lispList(LispIndex, append([]Node{n.Object}, n.Index.Dimensions...)...)
	case *Index:
		return sexp.NewArray(lispAll(n.Dimensions)...)
	case *Object:
		elements := []sexp.SExp{sexp.NewSymbol(LispObject)}
		//
		for _, k := range n.Keys {
			elements = append(elements, sexp.NewSymbol(k), Lisp(n.Properties[k]))
		}
		//
		return sexp.NewList(elements...)
	}
	//
	panic("unreachable")
}

func lispList(head string, args ...Node) *sexp.List {
	return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol(head)}, lispAll(args)...)...)
}

func lispAll(nodes []Node) []sexp.SExp {
	elements := make([]sexp.SExp, len(nodes))
	//
	for i, n := range nodes {
		elements[i] = Lisp(n)
	}
	//
	return elements
}
