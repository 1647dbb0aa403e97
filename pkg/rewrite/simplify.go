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

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Options configures a simplification.
type Options struct {
	// Context determines the properties of operators during matching.  Nil
	// means the default context.
	Context Context
	// ExactFractions determines whether non-integer constants are folded into
	// exact fractions (e.g. "1 / 3"), or into floating point numbers.
	ExactFractions bool
	// FractionsLimit bounds the numerator and denominator of exact fractions.
	FractionsLimit int64
	// Debug enables logging of every step which changes the expression.
	Debug bool
	// MaxDepth bounds how deeply expressions may be nested (zero means
	// unbounded).
	MaxDepth int
	// OnStep (if non-nil) is called for every step which changes the
	// expression.
	OnStep func(step Step, before ast.Node, after ast.Node)
}

// DefaultOptions returns the default simplification options.
func DefaultOptions() Options {
	return Options{
		ExactFractions: true,
		FractionsLimit: 10000,
		MaxDepth:       10000,
	}
}

// Simplify repeatedly applies a rule set to an expression until it reaches a
// fixed point.  Free variables are first resolved against the given scope (if
// any), and parentheses are removed.  Each pass applies every step of the rule
// set in order.  Rules are applied to the flattened expression, and the
// expression is left unflattened after each step.  Simplification stops as
// soon as an expression is seen for a second time.  Observe that this does not
// guarantee termination for rule sets which produce infinitely many distinct
// expressions.
func Simplify(expr ast.Node, rules RuleSet, scope Scope, opts Options) (ast.Node, error) {
	res, err := Resolve(expr, scope)
	if err != nil {
		return nil, err
	}
	//
	var (
		visited = make(map[string]bool)
		trace   = opts.Debug || opts.OnStep != nil
	)
	//
	res = ast.RemoveParens(res)
	str := ast.Format(res, ast.All)
	//
	for !visited[str] {
		visited[str] = true
		//
		if err := checkDepth(res, opts.MaxDepth); err != nil {
			return nil, err
		} else if opts.Debug {
			log.Debugf("working on: %s", str)
		}
		//
		for _, step := range rules {
			before := res
			//
			if res, err = applyStep(res, step, &opts); err != nil {
				return nil, err
			}
			//
			res = Unflattenl(res, opts.Context)
			//
			if trace {
				observe(step, before, res, &opts)
			}
		}
		//
		str = ast.Format(res, ast.All)
	}
	//
	return res, nil
}

func applyStep(node ast.Node, step Step, opts *Options) (ast.Node, error) {
	switch s := step.(type) {
	case *Transform:
		return s.Apply(node, opts)
	case *Rule:
		return ApplyRule(Flatten(node, opts.Context), s, opts.Context)
	}
	//
	panic("unreachable")
}

func observe(step Step, before ast.Node, after ast.Node, opts *Options) {
	if before == after {
		return
	}
	//
	prev := ast.Format(before, ast.All)
	next := ast.Format(after, ast.All)
	//
	if prev == next {
		return
	} else if opts.Debug {
		log.Debugf("applying %s produced %s", step, next)
	}
	//
	if opts.OnStep != nil {
		opts.OnStep(step, before, after)
	}
}

func checkDepth(node ast.Node, limit int) error {
	if depth := ast.Depth(node); limit > 0 && depth > limit {
		return fmt.Errorf("%w (depth %d exceeds %d)", ErrTooDeep, depth, limit)
	}
	//
	return nil
}
