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
	"strconv"
	"strings"
)

// Style determines how parentheses are placed when rendering a tree.
type Style uint

const (
	// Auto inserts only those parentheses necessary to preserve the meaning of
	// the tree (based on operator precedence and associativity).
	Auto Style = iota
	// All wraps every operand of an operator in parentheses, except for
	// constants and symbols.  The result is unambiguous and, hence, is used as
	// the canonical form of a tree when detecting a fixed point.
	All
)

// Format renders a tree in a given style.
func Format(node Node, style Style) string {
	var builder strings.Builder
	//
	format(node, style, &builder)
	//
	return builder.String()
}

func (n *Constant) String() string    { return Format(n, Auto) }
func (n *Symbol) String() string      { return Format(n, Auto) }
func (n *Operator) String() string    { return Format(n, Auto) }
func (n *Function) String() string    { return Format(n, Auto) }
func (n *Parenthesis) String() string { return Format(n, Auto) }
func (n *Array) String() string       { return Format(n, Auto) }
func (n *Accessor) String() string    { return Format(n, Auto) }
func (n *Index) String() string       { return Format(n, Auto) }
func (n *Object) String() string      { return Format(n, Auto) }

func format(node Node, style Style, out *strings.Builder) {
	switch n := node.(type) {
	case *Constant:
		out.WriteString(n.Value.String())
	case *Symbol:
		out.WriteString(n.Name)
	case *Operator:
		formatOperator(n, style, out)
	case *Function:
		out.WriteString(n.Name)
		formatList("(", n.Args, ")", style, out)
	case *Parenthesis:
		out.WriteString("(")
		format(n.Content, style, out)
		out.WriteString(")")
	case *Array:
		formatList("[", n.Items, "]", style, out)
	case *Accessor:
		formatOperand(n.Object, precedence(n.Object) != none, out, style)
		format(n.Index, style, out)
	case *Index:
		formatList("[", n.Dimensions, "]", style, out)
	case *Object:
		out.WriteString("{")
		//
		for i, k := range n.Keys {
			if i != 0 {
				out.WriteString(", ")
			}
			//
			out.WriteString(strconv.Quote(k))
			out.WriteString(": ")
			format(n.Properties[k], style, out)
		}
		//
		out.WriteString("}")
	default:
		panic("unreachable")
	}
}

func formatList(open string, items []Node, close string, style Style, out *strings.Builder) {
	out.WriteString(open)
	//
	for i, item := range items {
		if i != 0 {
			out.WriteString(", ")
		}
		//
		format(item, style, out)
	}
	//
	out.WriteString(close)
}

func formatOperator(n *Operator, style Style, out *strings.Builder) {
	parens := operandParens(n, style)
	//
	if n.IsUnary() {
		out.WriteString(n.Op)
		formatOperand(n.Args[0], parens[0], out, style)
		//
		return
	}
	//
	for i, arg := range n.Args {
		if i != 0 && n.Implicit {
			out.WriteString(" ")
		} else if i != 0 {
			out.WriteString(" ")
			out.WriteString(n.Op)
			out.WriteString(" ")
		}
		//
		formatOperand(arg, parens[i], out, style)
	}
}

func formatOperand(arg Node, parens bool, out *strings.Builder, style Style) {
	if parens {
		out.WriteString("(")
		format(arg, style, out)
		out.WriteString(")")
	} else {
		format(arg, style, out)
	}
}

// ===================================================================
// Precedence
// ===================================================================

// Signals a node which binds tighter than any operator.
const none = -1

const (
	additive       = 2
	multiplicative = 3
	unary          = 4
	power          = 5
)

// Determine the precedence of a given node.
func precedence(node Node) int {
	switch n := node.(type) {
	case *Operator:
		switch n.Fn {
		case "add", "subtract":
			if !n.IsUnary() {
				return additive
			}
		case "multiply", "divide", "mod":
			return multiplicative
		case "pow":
			return power
		}
		//
		if n.IsUnary() {
			return unary
		}
		//
		return multiplicative
	case *Constant:
		// Negative numbers are rendered with a leading minus
		if IsNegative(n.Value) {
			return unary
		}
	}
	//
	return none
}

// Determine whether an operator is right associative.
func rightAssociative(n *Operator) bool {
	return n.Fn == "pow"
}

// Determine whether a given operator is associative with the operator of a
// given child.  For example, "a + (b - c)" can be written "a + b - c".
func associativeWith(n *Operator, child Node) bool {
	c, ok := child.(*Operator)
	//
	if !ok || c.IsUnary() {
		return false
	}
	//
	switch n.Fn {
	case "add":
		return c.Fn == "add" || c.Fn == "subtract"
	case "multiply":
		return c.Fn == "multiply" || c.Fn == "divide"
	}
	//
	return false
}

// Determine which operands of a given operator must be parenthesised.
func operandParens(n *Operator, style Style) []bool {
	var (
		parens = make([]bool, len(n.Args))
		prec   = precedence(n)
	)
	//
	for i, arg := range n.Args {
		argPrec := precedence(arg)
		//
		switch {
		case style == All:
			_, isOp := arg.(*Operator)
			parens[i] = isOp || argPrec != none
		case argPrec == none:
			parens[i] = false
		case n.IsUnary():
			parens[i] = argPrec <= prec
		case argPrec < prec:
			parens[i] = true
		case argPrec > prec:
			parens[i] = false
		case len(n.Args) > 2:
			parens[i] = !associativeWith(n, arg)
		case i == 0:
			parens[i] = rightAssociative(n) && !associativeWith(n, arg)
		default:
			parens[i] = !rightAssociative(n) && !associativeWith(n, arg)
		}
	}
	//
	return parens
}
