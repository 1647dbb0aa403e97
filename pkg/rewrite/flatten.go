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
	"slices"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Flatten collapses every chain of an associative operator into a single
// operator node with many arguments.  For example, "(a + b) + (c + d)" becomes
// a single "add" node with four arguments.  Chains stop at children with a
// different operator.  The given tree is not modified.
func Flatten(node ast.Node, ctx Context) ast.Node {
	args, ok := ast.Args(node)
	//
	if !ok || len(args) == 0 {
		return ast.Map(node, func(child ast.Node) ast.Node {
			return Flatten(child, ctx)
		})
	}
	//
	nargs := allChildren(node, args, ctx)
	//
	for i, arg := range nargs {
		nargs[i] = Flatten(arg, ctx)
	}
	//
	if slices.Equal(args, nargs) {
		return node
	}
	//
	return ast.WithArgs(node, nargs)
}

// Unflattenr rebuilds every flattened associative operator as a right-heavy
// tree of binary operators.  For example, "a + b + c" becomes "a + (b + c)".
func Unflattenr(node ast.Node, ctx Context) ast.Node {
	return unflatten(node, ctx, false)
}

// Unflattenl rebuilds every flattened associative operator as a left-heavy
// tree of binary operators.  For example, "a + b + c" becomes "(a + b) + c".
func Unflattenl(node ast.Node, ctx Context) ast.Node {
	return unflatten(node, ctx, true)
}

func unflatten(node ast.Node, ctx Context, left bool) ast.Node {
	node = ast.Map(node, func(child ast.Node) ast.Node {
		return unflatten(child, ctx, left)
	})
	//
	args, ok := ast.Args(node)
	//
	if !ok || len(args) <= 2 || !IsAssociative(node, ctx) {
		return node
	} else if left {
		acc := args[0]
		//
		for _, arg := range args[1:] {
			acc = ast.WithArgs(node, []ast.Node{acc, arg})
		}
		//
		return acc
	}
	//
	acc := args[len(args)-1]
	//
	for i := len(args) - 2; i >= 0; i-- {
		acc = ast.WithArgs(node, []ast.Node{args[i], acc})
	}
	//
	return acc
}

// Determine the operands of an associative operator, by descending through
// children with the same operator.  For a non-associative operator, this is
// simply (a copy of) its arguments.
func allChildren(node ast.Node, args []ast.Node, ctx Context) []ast.Node {
	if !IsAssociative(node, ctx) {
		return slices.Clone(args)
	}
	//
	var (
		fn       = node.(*ast.Operator).Fn
		children []ast.Node
	)
	//
	var collect func([]ast.Node)
	//
	collect = func(args []ast.Node) {
		for _, arg := range args {
			if op, ok := arg.(*ast.Operator); ok && op.Fn == fn {
				collect(op.Args)
			} else {
				children = append(children, arg)
			}
		}
	}
	//
	collect(args)
	//
	return children
}
