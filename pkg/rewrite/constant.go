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
	"math"
	"math/big"

	"github.com/consensys/go-algebra/pkg/ast"
)

// SimplifyConstant folds every constant subexpression of a tree.  Arguments
// of commutative and associative operators are regrouped so that all constant
// arguments are folded together (e.g. "2 * x * 3" becomes "6 * x").  Folded
// values are turned back into nodes according to the given options: negative
// numbers become negations, whilst non-integer rationals become either exact
// fractions (e.g. "1 / 3") or floating point numbers.
var SimplifyConstant = &Transform{"simplifyConstant", func(node ast.Node, opts *Options) (ast.Node, error) {
	return foldConstants(node, opts).toNode(opts), nil
}}

// Result of constant folding, which is either a value or a residual node.
type folded struct {
	value ast.Value
	node  ast.Node
}

func (f folded) isValue() bool {
	return f.node == nil
}

func (f folded) toNode(opts *Options) ast.Node {
	if f.node != nil {
		return f.node
	}
	//
	return valueToNode(f.value, opts)
}

func foldConstants(node ast.Node, opts *Options) folded {
	switch n := node.(type) {
	case *ast.Symbol:
		return folded{node: n}
	case *ast.Constant:
		if ast.IsNumber(n.Value) {
			return folded{value: normalise(n.Value, opts)}
		}
		//
		return folded{node: n}
	case *ast.Parenthesis:
		return foldConstants(n.Content, opts)
	case *ast.Function:
		return foldFunction(n, opts)
	case *ast.Operator:
		return foldOperator(n, opts)
	}
	// Arrays, accessors, indices and objects
	return folded{node: ast.Map(node, func(child ast.Node) ast.Node {
		return foldConstants(child, opts).toNode(opts)
	})}
}

func foldFunction(n *ast.Function, opts *Options) folded {
	args := foldAll(n.Args, opts)
	//
	if n.Name == "add" || n.Name == "multiply" {
		return foldOp(n.Name, args, makeNode(n), opts)
	} else if values, ok := allValues(args); ok {
		if v, ok := evaluate(n.Name, values); ok {
			return folded{value: normalise(v, opts)}
		}
	}
	//
	return folded{node: ast.NewFunction(n.Name, toNodes(args, opts)...)}
}

func foldOperator(n *ast.Operator, opts *Options) folded {
	var (
		ctx  = opts.Context
		args []folded
	)
	//
	if n.IsUnary() {
		arg := foldConstants(n.Args[0], opts)
		//
		if arg.isValue() {
			if v, ok := evaluate(n.Fn, []ast.Value{arg.value}); ok {
				return folded{value: normalise(v, opts)}
			}
		}
		//
		return folded{node: ast.WithArgs(n, []ast.Node{arg.toNode(opts)})}
	} else if !IsAssociative(n, ctx) {
		return foldOp(n.Fn, foldAll(n.Args, opts), makeNode(n), opts)
	}
	//
	args = foldAll(allChildren(n, n.Args, ctx), opts)
	//
	if IsCommutative(n, ctx) {
		var consts, vars []folded
		//
		for _, arg := range args {
			if arg.isValue() {
				consts = append(consts, arg)
			} else {
				vars = append(vars, arg)
			}
		}
		// Fold all constants together, and place them first.
		if len(consts) > 1 {
			res := foldOp(n.Fn, consts, makeNode(n), opts)
			args = append([]folded{res}, vars...)
		}
	}
	//
	return foldOp(n.Fn, args, makeNode(n), opts)
}

// Fold a sequence of arguments from left to right using a given binary
// operation.  Adjacent values are evaluated where possible, and otherwise
// combined into a node.
func foldOp(fn string, args []folded, mk func(ast.Node, ast.Node) ast.Node, opts *Options) folded {
	acc := args[0]
	//
	for _, arg := range args[1:] {
		if acc.isValue() && arg.isValue() {
			if v, ok := evaluate(fn, []ast.Value{acc.value, arg.value}); ok {
				acc = folded{value: normalise(v, opts)}
				continue
			}
		}
		//
		acc = folded{node: mk(acc.toNode(opts), arg.toNode(opts))}
	}
	//
	return acc
}

func makeNode(node ast.Node) func(ast.Node, ast.Node) ast.Node {
	return func(lhs ast.Node, rhs ast.Node) ast.Node {
		return ast.WithArgs(node, []ast.Node{lhs, rhs})
	}
}

func foldAll(nodes []ast.Node, opts *Options) []folded {
	args := make([]folded, len(nodes))
	//
	for i, node := range nodes {
		args[i] = foldConstants(node, opts)
	}
	//
	return args
}

func allValues(args []folded) ([]ast.Value, bool) {
	values := make([]ast.Value, len(args))
	//
	for i, arg := range args {
		if !arg.isValue() {
			return nil, false
		}
		//
		values[i] = arg.value
	}
	//
	return values, true
}

func toNodes(args []folded, opts *Options) []ast.Node {
	nodes := make([]ast.Node, len(args))
	//
	for i, arg := range args {
		nodes[i] = arg.toNode(opts)
	}
	//
	return nodes
}

// ===================================================================
// Values
// ===================================================================

// Convert a numeric value into the representation used for folding.  With
// exact fractions enabled, floating point numbers which are exactly some
// fraction within the limit become rationals.  Otherwise, non-integer
// rationals become floating point numbers.
func normalise(value ast.Value, opts *Options) ast.Value {
	switch v := value.(type) {
	case ast.Float:
		if opts.ExactFractions {
			if r, ok := exactFraction(float64(v), opts.FractionsLimit); ok {
				return ast.NewRational(r)
			}
		}
	case *ast.Rational:
		if !opts.ExactFractions && !v.IsInt() {
			return ast.Float(v.Float64())
		}
	}
	//
	return value
}

// Convert a value back into a node, such that no constant is negative.
func valueToNode(value ast.Value, opts *Options) ast.Node {
	switch v := value.(type) {
	case *ast.Rational:
		r := v.Rat()
		//
		if r.IsInt() {
			return signed(r.Sign() < 0, ast.NewConstant(ast.NewRational(r.Abs(r))))
		} else if !opts.ExactFractions || !withinLimit(r.Num(), r.Denom(), opts.FractionsLimit) {
			return valueToNode(ast.Float(v.Float64()), opts)
		}
		//
		num := new(big.Rat).SetInt(new(big.Int).Abs(r.Num()))
		den := new(big.Rat).SetInt(r.Denom())
		//
		return ast.NewOperator("divide",
			signed(r.Sign() < 0, ast.NewConstant(ast.NewRational(num))),
			ast.NewConstant(ast.NewRational(den)))
	case ast.Float:
		return signed(v < 0, ast.NewConstant(ast.Float(math.Abs(float64(v)))))
	}
	//
	return ast.NewConstant(value)
}

func signed(negative bool, node ast.Node) ast.Node {
	if negative {
		return ast.NewOperator("unaryMinus", node)
	}
	//
	return node
}

// Check a fraction's numerator and denominator against a given limit, where
// a non-positive limit means unbounded.
func withinLimit(num *big.Int, den *big.Int, limit int64) bool {
	if limit <= 0 {
		return true
	}
	//
	bound := big.NewInt(limit)
	//
	return new(big.Int).Abs(num).Cmp(bound) <= 0 && den.Cmp(bound) <= 0
}

// Find the simplest fraction within a given limit which is exactly a given
// floating point number, using its continued fraction expansion.
func exactFraction(f float64, limit int64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	//
	var (
		x      = new(big.Rat).SetFloat64(f)
		num    = new(big.Int).Set(x.Num())
		den    = new(big.Int).Set(x.Denom())
		h0, h1 = big.NewInt(0), big.NewInt(1)
		k0, k1 = big.NewInt(1), big.NewInt(0)
	)
	//
	for den.Sign() != 0 {
		a, rem := new(big.Int).DivMod(num, den, new(big.Int))
		h := new(big.Int).Add(new(big.Int).Mul(a, h1), h0)
		k := new(big.Int).Add(new(big.Int).Mul(a, k1), k0)
		//
		if !withinLimit(h, k, limit) {
			return nil, false
		}
		//
		c := new(big.Rat).SetFrac(h, k)
		//
		if v, _ := c.Float64(); v == f {
			return c, true
		}
		//
		h0, h1, k0, k1 = h1, h, k1, k
		num, den = den, rem
	}
	//
	return nil, false
}
