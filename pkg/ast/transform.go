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
	"slices"
)

// Equal determines whether two trees are structurally identical.  That is,
// they have the same shape with equal constant values, identical symbol names
// and identical operators.  The implicit multiplication flag is ignored.
func Equal(lhs Node, rhs Node) bool {
	switch l := lhs.(type) {
	case *Constant:
		r, ok := rhs.(*Constant)
		return ok && ValueEqual(l.Value, r.Value)
	case *Symbol:
		r, ok := rhs.(*Symbol)
		return ok && l.Name == r.Name
	case *Operator:
		r, ok := rhs.(*Operator)
		return ok && l.Op == r.Op && l.Fn == r.Fn && equalAll(l.Args, r.Args)
	case *Function:
		r, ok := rhs.(*Function)
		return ok && l.Name == r.Name && equalAll(l.Args, r.Args)
	case *Parenthesis:
		r, ok := rhs.(*Parenthesis)
		return ok && Equal(l.Content, r.Content)
	case *Array:
		r, ok := rhs.(*Array)
		return ok && equalAll(l.Items, r.Items)
	case *Accessor:
		r, ok := rhs.(*Accessor)
		return ok && Equal(l.Object, r.Object) && Equal(l.Index, r.Index)
	case *Index:
		r, ok := rhs.(*Index)
		return ok && equalAll(l.Dimensions, r.Dimensions)
	case *Object:
		r, ok := rhs.(*Object)
		return ok && slices.Equal(l.Keys, r.Keys) && equalAll(l.Children(), r.Children())
	}
	//
	return false
}

func equalAll(lhs []Node, rhs []Node) bool {
	return slices.EqualFunc(lhs, rhs, Equal)
}

// Map constructs a node of the same kind as a given node, where each immediate
// child has been replaced by the result of applying a function to it.  If no
// child was changed (i.e. the function returned each child as is) then the
// original node is returned.
func Map(node Node, fn func(Node) Node) Node {
	children := node.Children()
	//
	if len(children) == 0 {
		return node
	}
	//
	var (
		nchildren = make([]Node, len(children))
		changed   = false
	)
	//
	for i, child := range children {
		nchildren[i] = fn(child)
		changed = changed || nchildren[i] != child
	}
	//
	if !changed {
		return node
	}
	//
	return rebuild(node, nchildren)
}

// Rebuild a node of the same kind as a given node, but with the given
// children.
func rebuild(node Node, children []Node) Node {
	switch n := node.(type) {
	case *Operator:
		return &Operator{n.Op, n.Fn, children, n.Implicit}
	case *Function:
		return &Function{n.Name, children}
	case *Parenthesis:
		return &Parenthesis{children[0]}
	case *Array:
		return &Array{children}
	case *Accessor:
		index, ok := children[1].(*Index)
		if !ok {
			index = &Index{[]Node{children[1]}}
		}
		//
		return &Accessor{children[0], index}
	case *Index:
		return &Index{children}
	case *Object:
		return NewObject(n.Keys, children)
	}
	//
	panic("unreachable")
}

// Transform performs a pre-order traversal of a tree, applying a given
// function to each node.  When the function returns a different node, that
// node replaces the original and is not traversed further.  Otherwise, the
// children of the node are transformed in turn.
func Transform(node Node, fn func(Node) Node) Node {
	if replacement := fn(node); replacement != node {
		return replacement
	}
	//
	return Map(node, func(child Node) Node {
		return Transform(child, fn)
	})
}

// Clone constructs a deep copy of a given tree.
func Clone(node Node) Node {
	switch n := node.(type) {
	case *Constant:
		return &Constant{n.Value}
	case *Symbol:
		return &Symbol{n.Name}
	}
	//
	children := node.Children()
	nchildren := make([]Node, len(children))
	//
	for i, child := range children {
		nchildren[i] = Clone(child)
	}
	//
	if n, ok := node.(*Operator); ok && len(children) == 0 {
		return &Operator{n.Op, n.Fn, nil, n.Implicit}
	} else if len(children) == 0 {
		return shallow(node)
	}
	//
	return rebuild(node, nchildren)
}

// Make a shallow copy of a node which has no children.
func shallow(node Node) Node {
	switch n := node.(type) {
	case *Function:
		return &Function{n.Name, nil}
	case *Array:
		return &Array{nil}
	case *Index:
		return &Index{nil}
	case *Object:
		return &Object{nil, map[string]Node{}}
	}
	//
	panic("unreachable")
}

// Depth returns the depth of a tree, where a leaf has depth one.
func Depth(node Node) int {
	depth := 0
	//
	for _, child := range node.Children() {
		depth = max(depth, Depth(child))
	}
	//
	return depth + 1
}

// RemoveParens eliminates all parenthesis nodes from a tree.
func RemoveParens(node Node) Node {
	return Transform(node, func(n Node) Node {
		if p, ok := n.(*Parenthesis); ok {
			return RemoveParens(p.Content)
		}
		//
		return n
	})
}

// Walk visits every node in a tree in pre-order.
func Walk(node Node, fn func(Node)) {
	fn(node)
	//
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}
