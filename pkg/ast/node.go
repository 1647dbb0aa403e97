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
	"math/big"
)

// Node represents an expression tree.  This is a closed sum type: the only
// implementations are those declared in this package.  Nodes are never mutated
// after construction, hence subtrees may be safely shared between trees.
type Node interface {
	// Children returns the immediate children of this node (in order).
	Children() []Node
	// String returns a rendering of this node using the minimal number of
	// parentheses.
	String() string
	// marker method restricting implementations to this package.
	node()
}

// Constant represents a literal value, such as a number, a boolean or a
// string.
type Constant struct {
	Value Value
}

// Symbol represents a named variable, or a named constant (e.g. pi).
type Symbol struct {
	Name string
}

// Operator represents the application of an operator (e.g. "+") to one or
// more arguments.  The operator symbol is held in Op, whilst the name of the
// function which implements it is held in Fn (e.g. "add").  Unary and binary
// operators have one and two arguments respectively, whilst a flattened
// associative operator may have any number of arguments.
type Operator struct {
	Op   string
	Fn   string
	Args []Node
	// Implicit indicates a multiplication written by juxtaposition (e.g. "2x").
	Implicit bool
}

// Function represents a call to a named function.
type Function struct {
	Name string
	Args []Node
}

// Parenthesis represents an explicitly bracketed expression.
type Parenthesis struct {
	Content Node
}

// Array represents an array literal.
type Array struct {
	Items []Node
}

// Accessor represents an indexed access into some object (e.g. "a[1, 2]").
type Accessor struct {
	Object Node
	Index  *Index
}

// Index represents the dimensions of an indexed access.
type Index struct {
	Dimensions []Node
}

// Object represents an object literal, mapping keys to values.  The order of
// keys is retained.
type Object struct {
	Keys       []string
	Properties map[string]Node
}

func (*Constant) node()    {}
func (*Symbol) node()      {}
func (*Operator) node()    {}
func (*Function) node()    {}
func (*Parenthesis) node() {}
func (*Array) node()       {}
func (*Accessor) node()    {}
func (*Index) node()       {}
func (*Object) node()      {}

// Children returns the empty slice, since constants have no children.
func (n *Constant) Children() []Node { return nil }

// Children returns the empty slice, since symbols have no children.
func (n *Symbol) Children() []Node { return nil }

// Children returns the arguments of this operator.
func (n *Operator) Children() []Node { return n.Args }

// Children returns the arguments of this function call.
func (n *Function) Children() []Node { return n.Args }

// Children returns the bracketed content.
func (n *Parenthesis) Children() []Node { return []Node{n.Content} }

// Children returns the items of this array.
func (n *Array) Children() []Node { return n.Items }

// Children returns the object being accessed, followed by its index.
func (n *Accessor) Children() []Node { return []Node{n.Object, n.Index} }

// Children returns the dimensions of this index.
func (n *Index) Children() []Node { return n.Dimensions }

// Children returns the property values of this object, in key order.
func (n *Object) Children() []Node {
	children := make([]Node, len(n.Keys))
	//
	for i, k := range n.Keys {
		children[i] = n.Properties[k]
	}
	//
	return children
}

// IsUnary checks whether this operator has exactly one argument.
func (n *Operator) IsUnary() bool { return len(n.Args) == 1 }

// IsBinary checks whether this operator has exactly two arguments.
func (n *Operator) IsBinary() bool { return len(n.Args) == 2 }

// ===================================================================
// Constructors
// ===================================================================

// Operator symbols for the supported operator functions.
var operatorSymbols = map[string]string{
	"add":        "+",
	"subtract":   "-",
	"multiply":   "*",
	"divide":     "/",
	"mod":        "%",
	"pow":        "^",
	"unaryMinus": "-",
	"unaryPlus":  "+",
}

// OperatorSymbol returns the operator symbol for a given operator function
// (e.g. "+" for "add").
func OperatorSymbol(fn string) (string, bool) {
	op, ok := operatorSymbols[fn]
	return op, ok
}

// NewConstant constructs a constant node holding a given value.
func NewConstant(value Value) *Constant {
	return &Constant{value}
}

// NewNumber constructs a constant node holding a given integer.
func NewNumber(value int64) *Constant {
	return &Constant{NewRational(big.NewRat(value, 1))}
}

// NewSymbol constructs a symbol node with a given name.
func NewSymbol(name string) *Symbol {
	return &Symbol{name}
}

// NewOperator constructs an operator node for a given operator function (e.g.
// "add"), determining the operator symbol automatically.
func NewOperator(fn string, args ...Node) *Operator {
	op, ok := operatorSymbols[fn]
	//
	if !ok {
		op = fn
	}
	//
	return &Operator{op, fn, args, false}
}

// NewImplicit constructs an implicit multiplication of two nodes.
func NewImplicit(lhs Node, rhs Node) *Operator {
	return &Operator{"*", "multiply", []Node{lhs, rhs}, true}
}

// NewFunction constructs a function call node.
func NewFunction(name string, args ...Node) *Function {
	return &Function{name, args}
}

// NewParenthesis constructs a parenthesis node around some content.
func NewParenthesis(content Node) *Parenthesis {
	return &Parenthesis{content}
}

// NewArray constructs an array node from zero or more items.
func NewArray(items ...Node) *Array {
	return &Array{items}
}

// NewAccessor constructs an accessor for an object with zero or more
// dimensions.
func NewAccessor(object Node, dimensions ...Node) *Accessor {
	return &Accessor{object, &Index{dimensions}}
}

// NewObject constructs an object from a list of keys and a corresponding list
// of values.
func NewObject(keys []string, values []Node) *Object {
	properties := make(map[string]Node, len(keys))
	//
	for i, k := range keys {
		properties[k] = values[i]
	}
	//
	return &Object{keys, properties}
}

// WithArgs constructs a node of the same kind as a given operator or function
// node, but with different arguments.  For any other kind of node, this
// panics.
func WithArgs(node Node, args []Node) Node {
	switch n := node.(type) {
	case *Operator:
		return &Operator{n.Op, n.Fn, args, n.Implicit}
	case *Function:
		return &Function{n.Name, args}
	}
	//
	panic("node has no arguments")
}

// Args returns the arguments of an operator or function node, and false for
// any other kind of node.
func Args(node Node) ([]Node, bool) {
	switch n := node.(type) {
	case *Operator:
		return n.Args, true
	case *Function:
		return n.Args, true
	}
	//
	return nil, false
}

// IsConstant checks whether a node is a constant node.
func IsConstant(node Node) bool {
	_, ok := node.(*Constant)
	return ok
}

// IsSymbol checks whether a node is a symbol node.
func IsSymbol(node Node) bool {
	_, ok := node.(*Symbol)
	return ok
}

// IsUnaryMinus checks whether a node is the negation of some expression.
func IsUnaryMinus(node Node) bool {
	n, ok := node.(*Operator)
	return ok && n.Fn == "unaryMinus" && n.IsUnary()
}
