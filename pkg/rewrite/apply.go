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

// ApplyRule applies a rule throughout a tree, working bottom up.  At each
// node, the first variant of the rule which matches determines the
// replacement, using the first match found.  If the rule is marked to repeat,
// it is reapplied to the result until nothing changes.  The given tree is not
// modified.
func ApplyRule(node ast.Node, rule *Rule, ctx Context) (ast.Node, error) {
	if !ctx.Satisfies(rule.Assuming) {
		return node, nil
	}
	//
	matchCtx := ctx
	if rule.ImposeContext != nil {
		matchCtx = rule.ImposeContext
	}
	// Children first
	res, err := mapChildren(node, func(child ast.Node) (ast.Node, error) {
		return ApplyRule(child, rule, ctx)
	})
	//
	if err != nil {
		return nil, err
	}
	//
	for _, variant := range rule.Variants() {
		matches, err := variant.Left.Match(res, matchCtx)
		//
		if err != nil {
			return nil, err
		} else if len(matches) > 0 {
			res = substitute(res, variant.Right, matches[0])
			break
		}
	}
	//
	if rule.Repeat && res != node {
		return ApplyRule(res, rule, ctx)
	}
	//
	return res, nil
}

// Instantiate the right-hand side of a rule by replacing each wildcard with
// the node it was bound to.
func substitute(original ast.Node, repl ast.Node, match Match) ast.Node {
	res := ast.Clone(repl)
	// Retain implicit multiplication
	if op, ok := original.(*ast.Operator); ok && op.Implicit {
		if r, ok := res.(*ast.Operator); ok {
			res = &ast.Operator{Op: r.Op, Fn: r.Fn, Args: r.Args, Implicit: true}
		}
	}
	//
	return ast.Transform(res, func(n ast.Node) ast.Node {
		if s, ok := n.(*ast.Symbol); ok {
			if bound, ok := match[s.Name]; ok {
				return ast.Clone(bound)
			}
		}
		//
		return n
	})
}

// Map a function over the children of a node, stopping at the first error.
func mapChildren(node ast.Node, fn func(ast.Node) (ast.Node, error)) (ast.Node, error) {
	var err error
	//
	res := ast.Map(node, func(child ast.Node) ast.Node {
		if err != nil {
			return child
		}
		//
		nchild, e := fn(child)
		if e != nil {
			err = e
			return child
		}
		//
		return nchild
	})
	//
	return res, err
}
