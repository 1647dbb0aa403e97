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
	"github.com/consensys/go-algebra/pkg/ast"
)

// SimplifyCore is a single bottom-up pass which applies a fixed collection of
// local identities (e.g. "n + 0 -> n", "n * 1 -> n", "--n -> n"), folds binary
// operations over two literal constants and moves constants to the left of
// multiplications.  Operators with more than two arguments are left as is.
var SimplifyCore = &Transform{"simplifyCore", func(node ast.Node, opts *Options) (ast.Node, error) {
	return simplifyCore(node, opts.Context), nil
}}

func simplifyCore(node ast.Node, ctx Context) ast.Node {
	switch n := node.(type) {
	case *ast.Operator:
		if n.IsUnary() {
			return coreUnary(n, simplifyCore(n.Args[0], ctx))
		} else if n.IsBinary() {
			return coreBinary(n, simplifyCore(n.Args[0], ctx), simplifyCore(n.Args[1], ctx), ctx)
		}
	case *ast.Parenthesis:
		content := simplifyCore(n.Content, ctx)
		//
		switch content.(type) {
		case *ast.Parenthesis, *ast.Symbol, *ast.Constant:
			return content
		}
		//
		return ast.NewParenthesis(content)
	case *ast.Function:
		args := make([]ast.Node, len(n.Args))
		//
		for i, arg := range n.Args {
			args[i] = simplifyCore(arg, ctx)
			//
			if p, ok := args[i].(*ast.Parenthesis); ok {
				args[i] = p.Content
			}
		}
		//
		return ast.NewFunction(n.Name, args...)
	}
	//
	return node
}

func coreUnary(n *ast.Operator, arg ast.Node) ast.Node {
	switch n.Fn {
	case "unaryPlus":
		return arg
	case "unaryMinus":
		if a, ok := arg.(*ast.Operator); ok && a.Fn == "unaryMinus" && a.IsUnary() {
			// --a => a
			return a.Args[0]
		} else if ok && a.Fn == "subtract" && a.IsBinary() {
			// -(a - b) => b - a
			return ast.NewOperator("subtract", a.Args[1], a.Args[0])
		}
	}
	//
	return ast.WithArgs(n, []ast.Node{arg})
}

func coreBinary(n *ast.Operator, lhs ast.Node, rhs ast.Node, ctx Context) ast.Node {
	switch n.Fn {
	case "add":
		return coreAdd(n, lhs, rhs)
	case "subtract":
		return coreSubtract(n, lhs, rhs, ctx)
	case "multiply":
		return coreMultiply(n, lhs, rhs, ctx)
	case "divide":
		return coreDivide(n, lhs, rhs)
	case "pow":
		return corePow(n, lhs, rhs)
	}
	//
	return n
}

func coreAdd(n *ast.Operator, lhs ast.Node, rhs ast.Node) ast.Node {
	if isValue(lhs, 0) {
		return rhs
	} else if c, ok := fold("add", lhs, rhs); ok {
		return c
	} else if isValue(rhs, 0) {
		return lhs
	} else if ast.IsUnaryMinus(rhs) {
		// a + -b => a - b
		return ast.NewOperator("subtract", lhs, rhs.(*ast.Operator).Args[0])
	}
	//
	return ast.WithArgs(n, []ast.Node{lhs, rhs})
}

func coreSubtract(n *ast.Operator, lhs ast.Node, rhs ast.Node, ctx Context) ast.Node {
	if c, ok := fold("subtract", lhs, rhs); ok {
		return c
	} else if isValue(lhs, 0) && !ast.IsConstant(rhs) {
		return ast.NewOperator("unaryMinus", rhs)
	} else if isValue(rhs, 0) {
		return lhs
	} else if ast.IsUnaryMinus(rhs) {
		// a - -b => a + b
		return simplifyCore(ast.NewOperator("add", lhs, rhs.(*ast.Operator).Args[0]), ctx)
	}
	//
	return ast.WithArgs(n, []ast.Node{lhs, rhs})
}

func coreMultiply(n *ast.Operator, lhs ast.Node, rhs ast.Node, ctx Context) ast.Node {
	if isValue(lhs, 0) || isValue(rhs, 0) {
		return ast.NewNumber(0)
	} else if isValue(lhs, 1) {
		return rhs
	} else if isValue(rhs, 1) {
		return lhs
	} else if c, ok := fold("multiply", lhs, rhs); ok {
		return c
	} else if !ast.IsConstant(rhs) {
		return ast.WithArgs(n, []ast.Node{lhs, rhs})
	}
	// (c1 * x) * c2 => (c1 * c2) * x
	if l, ok := lhs.(*ast.Operator); ok && l.Fn == n.Fn && l.IsBinary() && !l.Implicit {
		if c, ok := fold("multiply", l.Args[0], rhs); ok {
			return ast.WithArgs(n, []ast.Node{c, l.Args[1]})
		}
	}
	// constants on the left
	if IsCommutative(n, ctx) {
		return ast.WithArgs(n, []ast.Node{rhs, lhs})
	}
	//
	return ast.WithArgs(n, []ast.Node{lhs, rhs})
}

func coreDivide(n *ast.Operator, lhs ast.Node, rhs ast.Node) ast.Node {
	if isValue(lhs, 0) {
		return ast.NewNumber(0)
	} else if isValue(rhs, 1) || isValue(rhs, 2) || isValue(rhs, 4) {
		if c, ok := fold("divide", lhs, rhs); ok {
			return c
		}
	}
	//
	return ast.WithArgs(n, []ast.Node{lhs, rhs})
}

func corePow(n *ast.Operator, lhs ast.Node, rhs ast.Node) ast.Node {
	if isValue(rhs, 0) {
		return ast.NewNumber(1)
	} else if isValue(rhs, 1) {
		return lhs
	} else if c, ok := fold("pow", lhs, rhs); ok {
		return c
	}
	// (a ^ c1) ^ c2 => a ^ (c1 * c2)
	if l, ok := lhs.(*ast.Operator); ok && l.Fn == "pow" && l.IsBinary() {
		if c, ok := fold("multiply", l.Args[1], rhs); ok {
			return ast.WithArgs(n, []ast.Node{l.Args[0], c})
		}
	}
	//
	return ast.WithArgs(n, []ast.Node{lhs, rhs})
}

// Fold an operation over two literal constants into a single constant.
func fold(fn string, lhs ast.Node, rhs ast.Node) (*ast.Constant, bool) {
	l, lok := lhs.(*ast.Constant)
	r, rok := rhs.(*ast.Constant)
	//
	if !lok || !rok {
		return nil, false
	}
	//
	if v, ok := evaluate(fn, []ast.Value{l.Value, r.Value}); ok {
		return ast.NewConstant(v), true
	}
	//
	return nil, false
}

// Check whether a node is a numeric constant equal to a given integer.
func isValue(node ast.Node, value int64) bool {
	c, ok := node.(*ast.Constant)
	//
	return ok && ast.IsNumber(c.Value) && ast.ValueEqual(c.Value, ast.NewNumber(value).Value)
}
