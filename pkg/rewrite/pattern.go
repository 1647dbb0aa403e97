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
	"slices"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Pattern is the left-hand side of a rule, where the class of every wildcard
// has been determined up front.
type Pattern struct {
	node ast.Node
	// Class of each symbol appearing in the pattern.
	classes map[string]Class
}

// NewPattern constructs a pattern from a given tree, classifying every symbol
// within it.  An error is returned for any symbol which is neither a wildcard
// nor a named constant.
func NewPattern(node ast.Node) (*Pattern, error) {
	var (
		classes = make(map[string]Class)
		err     error
	)
	//
	ast.Walk(node, func(n ast.Node) {
		if s, ok := n.(*ast.Symbol); ok && err == nil {
			classes[s.Name], err = ClassOf(s.Name)
		}
	})
	//
	if err != nil {
		return nil, err
	}
	//
	return &Pattern{node, classes}, nil
}

// Node returns the tree underlying this pattern.
func (p *Pattern) Node() ast.Node {
	return p.node
}

func (p *Pattern) String() string {
	return p.node.String()
}

// Match attempts to match this pattern against a given node, returning every
// distinct way in which it matches.  An empty result indicates no match.  An
// error is only returned for patterns which cannot be matched in principle
// (e.g. permuting more than two arguments of a commutative operator).
func (p *Pattern) Match(node ast.Node, ctx Context) ([]Match, error) {
	return p.match(p.node, node, ctx, false)
}

func (p *Pattern) match(rule ast.Node, node ast.Node, ctx Context, split bool) ([]Match, error) {
	switch r := rule.(type) {
	case *ast.Operator:
		if n, ok := node.(*ast.Operator); ok && r.Op == n.Op && r.Fn == n.Fn {
			return p.matchArgs(r, r.Args, n, n.Args, ctx, split)
		}
	case *ast.Function:
		if n, ok := node.(*ast.Function); ok && r.Name == n.Name {
			return p.matchArgs(r, r.Args, n, n.Args, ctx, split)
		}
	case *ast.Symbol:
		return p.matchSymbol(r, node), nil
	case *ast.Constant:
		if n, ok := node.(*ast.Constant); ok && ast.ValueEqual(r.Value, n.Value) {
			return []Match{{}}, nil
		}
	}
	// No match
	return nil, nil
}

func (p *Pattern) matchSymbol(rule *ast.Symbol, node ast.Node) []Match {
	class := p.classes[rule.Name]
	//
	if class == ClassLiteral {
		if n, ok := node.(*ast.Symbol); ok && n.Name == rule.Name {
			return []Match{{}}
		}
	} else if class.Accepts(node) {
		return []Match{{rule.Name: node}}
	}
	//
	return nil
}

func (p *Pattern) matchArgs(rule ast.Node, rargs []ast.Node, node ast.Node, nargs []ast.Node, ctx Context,
	split bool) ([]Match, error) {
	switch {
	case (len(nargs) == 1 && len(rargs) == 1) || !IsAssociative(node, ctx) || split:
		// Match arguments pairwise
		children, err := p.matchPairwise(rargs, nargs, ctx)
		//
		if err != nil {
			return nil, err
		} else if children != nil {
			return mergeChildMatches(children), nil
		} else if !IsCommutative(node, ctx) || len(rargs) < 2 {
			return nil, nil
		} else if len(rargs) > 2 {
			return nil, fmt.Errorf("%w: %s", ErrNotImplemented, rule)
		} else if len(nargs) != 2 {
			return nil, nil
		}
		// Try matching in reverse order
		children, err = p.matchPairwise(rargs, []ast.Node{nargs[1], nargs[0]}, ctx)
		//
		if err != nil || children == nil {
			return nil, err
		}
		//
		return mergeChildMatches(children), nil
	case len(nargs) >= 2 && len(rargs) == 2:
		// Node is flattened but rule is not.  Therefore, consider every way of
		// splitting the node into two.
		var matches []Match
		//
		for _, s := range splits(node, nargs, ctx) {
			ms, err := p.match(rule, s, ctx, true)
			if err != nil {
				return nil, err
			}
			//
			matches = append(matches, ms...)
		}
		//
		return matches, nil
	case len(rargs) > 2:
		return nil, fmt.Errorf("%w: %s", ErrNonBinaryAssociative, rule)
	}
	// Incorrect number of arguments
	return nil, nil
}

// Match each rule argument against the corresponding node argument, returning
// the matches for each.  If the number of arguments differs, or any argument
// fails to match, nil is returned.
func (p *Pattern) matchPairwise(rargs []ast.Node, nargs []ast.Node, ctx Context) ([][]Match, error) {
	if len(rargs) != len(nargs) {
		return nil, nil
	}
	//
	children := make([][]Match, 0, len(rargs))
	//
	for i, rarg := range rargs {
		ms, err := p.match(rarg, nargs[i], ctx, false)
		//
		if err != nil || len(ms) == 0 {
			return nil, err
		}
		//
		children = append(children, ms)
	}
	//
	return children, nil
}

// Determine every way of splitting the arguments of an associative operator
// into a binary node.  For a commutative operator, each argument is split
// from the rest.  Otherwise, the argument order is retained and every split
// point is considered.
func splits(node ast.Node, args []ast.Node, ctx Context) []ast.Node {
	var (
		res   []ast.Node
		group = func(args []ast.Node) ast.Node {
			if len(args) == 1 {
				return args[0]
			}
			//
			return ast.WithArgs(node, slices.Clone(args))
		}
	)
	//
	if IsCommutative(node, ctx) {
		for i, arg := range args {
			rest := slices.Delete(slices.Clone(args), i, i+1)
			res = append(res, ast.WithArgs(node, []ast.Node{arg, group(rest)}))
		}
	} else {
		for i := 1; i < len(args); i++ {
			res = append(res, ast.WithArgs(node, []ast.Node{group(args[:i]), group(args[i:])}))
		}
	}
	//
	return res
}
