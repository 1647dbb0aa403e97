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
	"strings"

	"github.com/consensys/go-algebra/pkg/ast"
	"github.com/consensys/go-algebra/pkg/parser"
)

// Step is a single entry of a compiled rule set, which is either a *Rule or a
// *Transform.
type Step interface {
	fmt.Stringer
	step()
}

// RuleSet is an ordered sequence of compiled steps.  A rule set is immutable
// once compiled and can be shared between concurrent simplifications.
type RuleSet []Step

// RuleObject describes a rule declaratively.  Either S is given (as "l -> r"),
// or both L and R are given.
type RuleObject struct {
	L string `yaml:"l"`
	R string `yaml:"r"`
	S string `yaml:"s"`
	// Repeat the rule at each node until it no longer applies.
	Repeat bool `yaml:"repeat"`
	// Assuming restricts the rule to contexts agreeing with these properties.
	Assuming Context `yaml:"assuming"`
	// ImposeContext replaces the context whilst matching this rule.
	ImposeContext Context `yaml:"imposeContext"`
	// Evaluate is a side expression which is parsed, but otherwise unused.
	Evaluate string `yaml:"evaluate"`
}

// Transform is a step which rewrites a whole tree directly, rather than by
// matching a pattern.
type Transform struct {
	Name  string
	Apply func(node ast.Node, opts *Options) (ast.Node, error)
}

func (t *Transform) step() {}

func (t *Transform) String() string {
	return t.Name
}

// Variant is a pair of left and right patterns for a rule.
type Variant struct {
	Left  *Pattern
	Right ast.Node
}

// Rule is a compiled rewrite rule.
type Rule struct {
	Variant
	Repeat        bool
	Assuming      Context
	ImposeContext Context
	Evaluate      ast.Node
	// Expanded allows a binary rule for an associative operator to match a
	// flattened node with more arguments, by capturing the remaining
	// arguments in a placeholder.
	Expanded *Variant
	// ExpandedNC1 and ExpandedNC2 additionally anchor the rule away from the
	// left edge of a flattened non-commutative operator.
	ExpandedNC1 *Variant
	ExpandedNC2 *Variant
}

func (r *Rule) step() {}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Left, r.Right)
}

// Variants returns the non-nil variants of this rule, in the order in which
// they are attempted.
func (r *Rule) Variants() []*Variant {
	variants := []*Variant{&r.Variant}
	//
	for _, v := range []*Variant{r.Expanded, r.ExpandedNC1, r.ExpandedNC2} {
		if v != nil {
			variants = append(variants, v)
		}
	}
	//
	return variants
}

// Compile a sequence of rules, where each is either a string of the form
// "l -> r", a RuleObject, a *Transform, a func(ast.Node) ast.Node or an
// already compiled *Rule.  The given context determines which operators are
// associative and commutative when generating expanded variants, where nil
// means the default context.
func Compile(ctx Context, rules ...any) (RuleSet, error) {
	var (
		set   = make(RuleSet, 0, len(rules))
		names placeholders
	)
	//
	for _, r := range rules {
		step, err := compileStep(r, ctx, &names)
		if err != nil {
			return nil, err
		}
		//
		set = append(set, step)
	}
	//
	return set, nil
}

// MustCompile compiles a sequence of rules under the default context, and
// panics if this fails.
func MustCompile(rules ...any) RuleSet {
	set, err := Compile(nil, rules...)
	if err != nil {
		panic(err.Error())
	}
	//
	return set
}

func compileStep(rule any, ctx Context, names *placeholders) (Step, error) {
	switch r := rule.(type) {
	case string:
		lhs, rhs, err := splitRule(r)
		if err != nil {
			return nil, err
		}
		//
		return compileRule(RuleObject{L: lhs, R: rhs}, ctx, names)
	case RuleObject:
		return compileObject(r, ctx, names)
	case *RuleObject:
		return compileObject(*r, ctx, names)
	case *Rule:
		return r, nil
	case *Transform:
		return r, nil
	case func(ast.Node) ast.Node:
		return &Transform{"func", func(node ast.Node, _ *Options) (ast.Node, error) {
			return r(node), nil
		}}, nil
	}
	//
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedRule, rule)
}

func compileObject(obj RuleObject, ctx Context, names *placeholders) (Step, error) {
	if obj.S != "" {
		lhs, rhs, err := splitRule(obj.S)
		if err != nil {
			return nil, err
		}
		//
		obj.L, obj.R = lhs, rhs
	}
	//
	if obj.L == "" || obj.R == "" {
		return nil, ErrIncompleteRule
	}
	//
	return compileRule(obj, ctx, names)
}

func splitRule(text string) (string, string, error) {
	if parts := strings.Split(text, "->"); len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	//
	return "", "", fmt.Errorf("%w: could not parse rule %q", ErrMalformedRule, text)
}

func compileRule(obj RuleObject, ctx Context, names *placeholders) (*Rule, error) {
	var (
		rule = &Rule{Repeat: obj.Repeat, Assuming: obj.Assuming, ImposeContext: obj.ImposeContext}
		lhs  ast.Node
		rhs  ast.Node
		err  error
	)
	//
	if lhs, err = parseSide(obj.L); err != nil {
		return nil, err
	} else if rhs, err = parseSide(obj.R); err != nil {
		return nil, err
	} else if obj.Evaluate != "" {
		if rule.Evaluate, err = parseSide(obj.Evaluate); err != nil {
			return nil, err
		}
	}
	//
	if rule.Left, err = NewPattern(lhs); err != nil {
		return nil, err
	}
	//
	rule.Right = rhs
	//
	if IsAssociative(lhs, ctx) {
		err = expand(rule, lhs, rhs, ctx, names)
	}
	//
	return rule, err
}

// Construct the expanded variants of a rule whose left-hand side is rooted at
// an associative operator.
func expand(rule *Rule, lhs ast.Node, rhs ast.Node, ctx Context, names *placeholders) error {
	var (
		nonCommutative = !IsCommutative(lhs, ctx)
		leftsym        ast.Node
		err            error
	)
	//
	if nonCommutative {
		leftsym = names.fresh()
	}
	//
	sym := names.fresh()
	makeNode := func(l, r ast.Node) ast.Node {
		return ast.WithArgs(lhs, []ast.Node{l, r})
	}
	//
	expandedLhs := Unflattenr(Flatten(makeNode(lhs, sym), ctx), ctx)
	expandedRhs := makeNode(rhs, sym)
	//
	if rule.Expanded, err = newVariant(expandedLhs, expandedRhs); err != nil || !nonCommutative {
		return err
	} else if rule.ExpandedNC1, err = newVariant(makeNode(leftsym, lhs), makeNode(leftsym, rhs)); err != nil {
		return err
	}
	//
	rule.ExpandedNC2, err = newVariant(makeNode(leftsym, expandedLhs), makeNode(leftsym, expandedRhs))
	//
	return err
}

func newVariant(lhs ast.Node, rhs ast.Node) (*Variant, error) {
	left, err := NewPattern(lhs)
	if err != nil {
		return nil, err
	}
	//
	return &Variant{left, rhs}, nil
}

// Parse one side of a rule, eliminating any parentheses.
func parseSide(text string) (ast.Node, error) {
	node, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedRule, strings.TrimSpace(text), err)
	}
	//
	return ast.RemoveParens(node), nil
}

// Generates unique placeholder symbols for the expanded variants of rules.
type placeholders struct {
	next uint
}

func (p *placeholders) fresh() *ast.Symbol {
	sym := ast.NewSymbol(fmt.Sprintf("_p%d", p.next))
	p.next++
	//
	return sym
}
